package router

import (
	"html/template"
	"path/filepath"
	"time"

	"github.com/gin-contrib/multitemplate"
)

// LoadTemplates assembles named template sets so handlers can render by name.
// Every user-controlled value goes through html/template's contextual escaping;
// nothing is ever marked safe.
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	components, err := filepath.Glob(templatesDir + "/components/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files. The view goes first: the executed template is
	// named after the first file, components only contribute defines.
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, view)
		files = append(files, components...)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"formatTime": func(ts int64) string {
			// 看板惯用的日期格式
			return time.Unix(ts, 0).Format("01/02/06(Mon)15:04:05")
		},
	}

	r.AddFromFilesFuncs("board/index.html", funcMap, assemble(templatesDir+"/views/board/index.html")...)
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
