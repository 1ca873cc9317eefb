package diff

import (
	"path"
	"strings"
)

// DefaultLanguage is used when a path has no known extension.
const DefaultLanguage = "diff"

// languageByExt maps lowercased extensions (with the dot) to lexer names.
var languageByExt = map[string]string{
	".go":    "go",
	".rs":    "rust",
	".c":     "c",
	".h":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".cxx":   "cpp",
	".hh":    "cpp",
	".hpp":   "cpp",
	".py":    "python",
	".rb":    "ruby",
	".js":    "javascript",
	".mjs":   "javascript",
	".cjs":   "javascript",
	".jsx":   "jsx",
	".ts":    "typescript",
	".tsx":   "tsx",
	".java":  "java",
	".kt":    "kotlin",
	".swift": "swift",
	".php":   "php",
	".pl":    "perl",
	".lua":   "lua",
	".sh":    "bash",
	".bash":  "bash",
	".zsh":   "bash",
	".sql":   "sql",
	".html":  "html",
	".htm":   "html",
	".css":   "css",
	".scss":  "scss",
	".xml":   "xml",
	".json":  "json",
	".yaml":  "yaml",
	".yml":   "yaml",
	".toml":  "toml",
	".ini":   "ini",
	".md":    "markdown",
	".rst":   "rst",
	".tex":   "tex",
	".hs":    "haskell",
	".ml":    "ocaml",
	".ex":    "elixir",
	".exs":   "elixir",
	".erl":   "erlang",
	".scala": "scala",
	".zig":   "zig",
	".nix":   "nix",
	".proto": "protobuf",
	".dts":   "c",
	".dtsi":  "c",
	".s":     "gas",
	".cmake": "cmake",
	".diff":  "diff",
	".patch": "diff",
}

// languageByName covers files recognised by their base name.
var languageByName = map[string]string{
	"makefile":       "makefile",
	"gnumakefile":    "makefile",
	"kbuild":         "makefile",
	"dockerfile":     "docker",
	"cmakelists.txt": "cmake",
	"meson.build":    "meson",
}

// LanguageForPath infers the highlighting language of a file from its path.
// Unknown or missing extensions yield DefaultLanguage.
func LanguageForPath(p string) string {
	if p == "" {
		return DefaultLanguage
	}
	base := strings.ToLower(path.Base(p))
	if lang, ok := languageByName[base]; ok {
		return lang
	}
	if lang, ok := languageByExt[path.Ext(base)]; ok {
		return lang
	}
	return DefaultLanguage
}
