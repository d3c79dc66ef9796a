package output

import (
	"fmt"
	"net/url"
	"strings"
)

// maxPathWidth is the widest a file path is shown before it is shortened.
const maxPathWidth = 56

// ShortPath shortens long paths to a leading directory fragment plus the
// base name, for example "src/Contr…/PortalController.php". Short paths are
// returned unchanged.
func ShortPath(p string) string {
	if len([]rune(p)) <= maxPathWidth {
		return p
	}
	p = strings.ReplaceAll(p, `\`, "/")
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return p
	}
	dir, file := []rune(p[:i]), p[i+1:]
	keep := max(8, (maxPathWidth-len([]rune(file))-3)/2)
	if keep > len(dir) {
		keep = len(dir)
	}
	return string(dir[:keep]) + "…/" + file
}

// Location formats "file:line", or just the file when the line is unknown.
func Location(file string, line int) string {
	if line > 0 {
		return fmt.Sprintf("%s:%d", file, line)
	}
	return file
}

// IDELink is an editor deep link for a location.
type IDELink struct {
	Name string
	URL  string
}

// IDELinks returns deep links that open file at line in common editors.
func IDELinks(file string, line int) []IDELink {
	if line < 1 {
		line = 1
	}
	path := strings.TrimPrefix((&url.URL{Path: file}).EscapedPath(), "/")
	q := url.QueryEscape(file)
	return []IDELink{
		{Name: "VS Code", URL: fmt.Sprintf("vscode://file/%s:%d", path, line)},
		{Name: "VSCodium", URL: fmt.Sprintf("vscodium://file/%s:%d", path, line)},
		{Name: "PhpStorm", URL: fmt.Sprintf("phpstorm://open?file=%s&line=%d", q, line)},
		{Name: "NetBeans", URL: fmt.Sprintf("netbeans://open/?f=%s&line=%d", q, line)},
	}
}
