package main

import (
	"fmt"
	"os"
	"text/template"

	"github.com/reconquest/pkg/log"
	"github.com/seletskiy/tplutil"
)

var templateNotConfigured = template.Must(template.New("").Parse(`
hippo needs to know where your Hippo server is and who you are.
To do so, provide the configuration parameters:

{{ if not .URL -}}
{{" "}}- The URL of the Hippo server.
{{ end -}}
{{- if not .Username -}}
{{" "}}- The name of the Hippo user.
{{ end }}
Specify them as environment variables:

 HIPPO_URL={{ with .URL }}{{ . }}{{ else }}https://hippo.company/{{ end }} \
 HIPPO_USERNAME={{ with .Username }}{{ . }}{{ else }}<username-here>{{ end }} \
    hippo ...

Alternatively, you can specify these params in the config file {{ .ConfigPath }}:

 url: {{ with .URL }}{{ . }}{{ else }}https://hippo.company/{{ end }}
 username: {{ with .Username }}{{ . }}{{ else }}<username-here>{{ end }}`))

func renderMessageNotConfigured(config *Config, path string) (string, error) {
	return tplutil.ExecuteToString(templateNotConfigured, map[string]interface{}{
		"URL":        config.URL,
		"Username":   config.Username,
		"ConfigPath": path,
	})
}

func ShowMessageNotConfigured(config *Config, path string) {
	message, err := renderMessageNotConfigured(config, path)
	if err != nil {
		log.Errorf(err, "unable to show templated message")

		fmt.Fprintf(os.Stderr, "HIPPO_URL or HIPPO_USERNAME is not specified\n")
		return
	}

	fmt.Fprintln(os.Stderr, message)
}
