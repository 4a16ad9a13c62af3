package properties

import "strings"

// AppInfo describes the program registered under a process id.
type AppInfo struct {
	Title string
	Icon  string
}

// Lookup resolves process ids to programs.
type Lookup interface {
	App(pid string) (AppInfo, bool)
}

// StaticLookup is a Lookup backed by a fixed map.
type StaticLookup map[string]AppInfo

func (l StaticLookup) App(pid string) (AppInfo, bool) {
	info, ok := l[pid]
	return info, ok
}

var DefaultApps = StaticLookup{
	"FileExplorer": {Title: "File Explorer", Icon: "📁"},
	"MonacoEditor": {Title: "Monaco Editor", Icon: "📝"},
	"Photos":       {Title: "Photos", Icon: "🖼"},
	"Terminal":     {Title: "Terminal", Icon: "⌨"},
	"VideoPlayer":  {Title: "Video Player", Icon: "🎞"},
	"Browser":      {Title: "Browser", Icon: "🌐"},
}

// ExtensionTypes maps a lower-case extension, dot included, to a type name.
type ExtensionTypes map[string]string

var DefaultExtensionTypes = ExtensionTypes{
	".7z":   "7Z Archive",
	".exe":  "Application",
	".gif":  "GIF Image",
	".htm":  "HTML Document",
	".html": "HTML Document",
	".jpeg": "JPEG Image",
	".jpg":  "JPEG Image",
	".js":   "JavaScript File",
	".json": "JSON File",
	".md":   "Markdown File",
	".mp3":  "MP3 Audio",
	".mp4":  "MP4 Video",
	".pdf":  "PDF Document",
	".png":  "PNG Image",
	".svg":  "SVG Image",
	".txt":  "Text Document",
	".url":  "Internet Shortcut",
	".zip":  "Compressed (zipped) Folder",
}

// TypeOf returns the registered type for ext, or "<EXT> File" when none is.
func (t ExtensionTypes) TypeOf(ext string) string {
	ext = strings.ToLower(ext)
	if name, ok := t[ext]; ok {
		return name
	}
	if ext == "" {
		return "File"
	}
	return strings.ToUpper(strings.TrimPrefix(ext, ".")) + " File"
}
