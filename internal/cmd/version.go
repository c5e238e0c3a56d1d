package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sbmlteam/deviser/internal/codegen/common"
)

type Version struct {
	out io.Writer
}

func (v *Version) Run() error {
	ver, err := common.GetVersion()
	if err != nil {
		return err
	}
	out := v.out
	if out == nil {
		out = os.Stdout
	}
	_, err = fmt.Fprintf(out, "deviser %s\n", ver)
	return err
}
