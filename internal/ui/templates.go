package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"
)

//go:embed templates/*
var templateFS embed.FS

var templates = mustParseTemplates()

var funcMap = template.FuncMap{
	"formatTime": func(t interface{}) string {
		switch v := t.(type) {
		case nil:
			return ""
		case time.Time:
			if v.IsZero() {
				return ""
			}
			return v.Format("02/01/2006 15:04")
		case *time.Time:
			if v == nil {
				return ""
			}
			return v.Format("02/01/2006 15:04")
		}
		return ""
	},
	"px": func(v float64) template.CSS {
		return template.CSS(fmt.Sprintf("%.1fpx", v))
	},
	"money": func(v float64) string {
		return fmt.Sprintf("R$ %.2f", v)
	},
	"stateLabel": func(state string) string {
		labels := map[string]string{
			"agendada":           "Agendada",
			"confirmada":         "Confirmada",
			"realizada":          "Realizada",
			"falta_cobrada":      "Falta cobrada",
			"cancelada_paciente": "Cancelada pelo paciente",
			"remarcada":          "Remarcada",
			"pendente":           "Pendente",
			"concluida":          "Concluída",
			"nao_realizada":      "Não realizada",
			"paga":               "Paga",
			"atrasada":           "Atrasada",
			"cancelada":          "Cancelada",
		}
		if label, ok := labels[state]; ok {
			return label
		}
		return strings.ReplaceAll(state, "_", " ")
	},
}

func mustParseTemplates() map[string]*template.Template {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		panic(err)
	}

	base := template.Must(template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html"))

	sets := make(map[string]*template.Template)
	for _, file := range files {
		if file == "templates/base.html" {
			continue
		}

		set := template.Must(base.Clone())
		template.Must(set.ParseFS(templateFS, file))
		sets[file[len("templates/"):]] = set
	}

	return sets
}
