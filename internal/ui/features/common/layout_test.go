package common

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage(t *testing.T) {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<main>content</main>`)
		return err
	})

	tests := []struct {
		name    string
		data    PageData
		want    []string
		notWant []string
	}{
		{
			name: "production page with updates stream",
			data: PageData{Title: "Projects", UpdatesURL: "/updates"},
			want: []string{
				"<!doctype html>",
				"<title>Projects - Project Board</title>",
				`href="/static/styles.css"`,
				`<link rel="stylesheet" href="/static/styles.css">`,
				`data-init="@get(&#39;/updates&#39;)"`,
				"datastar.js",
				"<main>content</main>",
			},
			notWant: []string{"/reload"},
		},
		{
			name:    "dev page reloads",
			data:    PageData{Title: "Projects", IsDev: true},
			want:    []string{`data-init="@get('/reload', {retryMaxCount: 1000})"`},
			notWant: []string{"/updates"},
		},
		{
			name: "title is escaped",
			data: PageData{Title: "<b>x</b>"},
			want: []string{"<title>&lt;b&gt;x&lt;/b&gt; - Project Board</title>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Page(tt.data, body).Render(context.Background(), &buf))
			out := buf.String()
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}
