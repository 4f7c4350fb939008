package artifact

import "fmt"

// SnippetFormats lists the build tools [Snippets] renders, in display order.
var SnippetFormats = []string{"maven", "gradle", "gradle_kotlin", "sbt", "ivy", "leiningen", "buildr"}

// Snippets returns copy-paste dependency declarations for c, keyed by build
// tool name (see [SnippetFormats]).
func Snippets(c Coordinate) map[string]string {
	g, a, v := c.Group, c.Artifact, c.Version
	return map[string]string{
		"maven": fmt.Sprintf("<dependency>\n    <groupId>%s</groupId>\n    <artifactId>%s</artifactId>\n    <version>%s</version>\n</dependency>",
			g, a, v),
		"gradle":        fmt.Sprintf("implementation '%s:%s:%s'", g, a, v),
		"gradle_kotlin": fmt.Sprintf("implementation(\"%s:%s:%s\")", g, a, v),
		"sbt":           fmt.Sprintf("libraryDependencies += \"%s\" %% \"%s\" %% \"%s\"", g, a, v),
		"ivy":           fmt.Sprintf("<dependency org=\"%s\" name=\"%s\" rev=\"%s\" />", g, a, v),
		"leiningen":     fmt.Sprintf("[%s/%s \"%s\"]", g, a, v),
		"buildr":        fmt.Sprintf("'%s:%s:%s:%s'", g, a, c.Ext(), v),
	}
}
