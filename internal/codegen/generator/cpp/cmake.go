package cpp

import (
	"fmt"
	"strings"

	"github.com/sbmlteam/deviser/internal/codegen/common"
	"github.com/sbmlteam/deviser/internal/codegen/meta"
)

const cmakeTemplate = `# {{.Notice}}
cmake_minimum_required(VERSION 3.10)

project({{.Pkg}} VERSION {{.Version}} LANGUAGES CXX)

option(ENABLE_{{.Upper}} "Enable the {{.FullName}} package." ON)

if (NOT ENABLE_{{.Upper}})
  return()
endif()

find_package({{.Lib}} REQUIRED)

set({{.Upper}}_SOURCES
{{range .Sources}}  ${CMAKE_CURRENT_SOURCE_DIR}/{{.}}
{{end}})

add_library({{.Pkg}} ${{"{"}}{{.Upper}}_SOURCES{{"}"}})
target_include_directories({{.Pkg}} PUBLIC ${CMAKE_CURRENT_SOURCE_DIR}/src)
target_compile_definitions({{.Pkg}} PUBLIC USE_{{.Upper}})
target_link_libraries({{.Pkg}} PUBLIC {{.Lib}})

install(TARGETS {{.Pkg}} DESTINATION lib)
install(DIRECTORY ${CMAKE_CURRENT_SOURCE_DIR}/src/ DESTINATION include
        FILES_MATCHING PATTERN "*.h")
`

var cmakeTmpl = mustTemplate("cmake", cmakeTemplate)

// RenderCMake renders the build file compiling sources, which are relative to
// the target directory.
func RenderCMake(md *meta.Metadata, sources []string) ([]byte, error) {
	g := newGenerator(md)
	version, err := common.GetVersion()
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}
	major, minor, patch := common.ParseVersion(version)
	return execute(cmakeTmpl, map[string]any{
		"Notice":   "Generated by " + common.Stamp() + ". DO NOT EDIT.",
		"Pkg":      g.pkg,
		"Upper":    strings.ToUpper(g.pkg),
		"FullName": md.Package.FullName,
		"Lib":      strings.ToLower(g.d.lib),
		"Version":  fmt.Sprintf("%d.%d.%d", major, minor, patch),
		"Sources":  sources,
	})
}
