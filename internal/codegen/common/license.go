package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/sbmlteam/deviser/internal/codegen/emit"
	"github.com/sbmlteam/deviser/schema"
)

const mitLicenseTemplate = `MIT License

Copyright (c) %d The %s package authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
`

// License renders LICENSE.txt into dir. The package's own license text wins over
// the MIT default.
func License(pkg *schema.Package, dir string) emit.Artifact {
	text := fmt.Sprintf(mitLicenseTemplate, time.Now().Year(), pkg.FullName)
	if len(pkg.License) > 0 {
		text = strings.Join(pkg.License, "\n") + "\n"
	}
	return emit.Artifact{Path: joinPath(dir, "LICENSE.txt"), Content: []byte(text)}
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return strings.TrimSuffix(dir, "/") + "/" + name
}
