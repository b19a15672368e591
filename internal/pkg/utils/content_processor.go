package utils

import (
	"regexp"
	"strings"
)

// DecoratePageHTML adds the frontend's Tailwind classes to the raw HTML
// stored for a page. Elements that already carry a class attribute are left
// untouched.
func DecoratePageHTML(content string) string {
	replacements := map[string]string{
		`<h1([^>]*)>`:         `<h1$1 class="text-4xl font-bold mb-4 mt-6">`,
		`<h2([^>]*)>`:         `<h2$1 class="text-3xl font-bold mb-3 mt-5">`,
		`<h3([^>]*)>`:         `<h3$1 class="text-2xl font-bold mb-2 mt-4">`,
		`<p([^>]*)>`:          `<p$1 class="mb-4 leading-relaxed">`,
		`<ul([^>]*)>`:         `<ul$1 class="list-disc list-inside mb-4 ml-4 space-y-2">`,
		`<ol([^>]*)>`:         `<ol$1 class="list-decimal list-inside mb-4 ml-4 space-y-2">`,
		`<blockquote([^>]*)>`: `<blockquote$1 class="border-l-4 border-primary pl-4 italic mb-4">`,
		`<code([^>]*)>`:       `<code$1 class="bg-base-200 px-2 py-1 rounded text-sm font-mono">`,
		`<pre([^>]*)>`:        `<pre$1 class="bg-base-200 p-4 rounded-lg mb-4 overflow-x-auto">`,
		`<a([^>]*)>`:          `<a$1 class="link link-primary">`,
	}

	decorated := content
	for pattern, replacement := range replacements {
		re := regexp.MustCompile(pattern)
		for _, match := range re.FindAllStringSubmatch(decorated, -1) {
			if len(match) > 1 && !strings.Contains(match[1], "class=") {
				decorated = strings.Replace(decorated, match[0], replacement, 1)
			}
		}
	}

	return decorated
}
