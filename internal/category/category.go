// Package category maps file extensions to the folder a file is organized into.
package category

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Folder names produced by Resolve.
const (
	Audio       = "Audio"
	Videos      = "Videos"
	Images      = "Images"
	Documents   = "Documents"
	Archives    = "Archives"
	Programming = "Programming"
	Executables = "Executables"
	Fonts       = "Fonts"
	EBooks      = "E-books"
	Design      = "Design"
	// Misc receives every extension absent from the table.
	Misc = "Misc"
)

var names = []string{Audio, Videos, Images, Documents, Archives, Programming, Executables, Fonts, EBooks, Design, Misc}

var table = buildTable(map[string][]string{
	Audio:       {"mp3", "wav", "flac", "m4a", "aac", "ogg"},
	Videos:      {"mp4", "avi", "mkv", "mov", "wmv", "webm", "m4v", "flv"},
	Images:      {"jpg", "jpeg", "png", "gif", "bmp", "tiff", "webp"},
	Documents:   {"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "txt", "rtf", "odt"},
	Archives:    {"zip", "rar", "7z", "tar", "gz"},
	Programming: {"py", "js", "html", "css", "java", "c", "cpp", "php", "rb", "go", "rs", "ts", "json", "xml"},
	Executables: {"exe", "msi", "app", "dmg"},
	Fonts:       {"ttf", "otf", "woff", "woff2"},
	EBooks:      {"epub", "mobi", "azw", "azw3", "fb2"},
	Design:      {"psd", "ai", "svg", "sketch", "xd", "fig"},
})

var outputFolders = func() map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}()

func buildTable(byCategory map[string][]string) map[string]string {
	out := make(map[string]string)
	for cat, exts := range byCategory {
		for _, ext := range exts {
			if prev, dup := out[ext]; dup {
				panic("category: extension " + ext + " listed under " + prev + " and " + cat)
			}
			out[ext] = cat
		}
	}
	return out
}

// Resolve returns the category for an extension. The extension may carry a
// leading dot and any letter case; unknown and empty extensions yield Misc.
func Resolve(ext string) string {
	key := cases.Lower(language.Und).String(strings.TrimPrefix(ext, "."))
	if cat, ok := table[key]; ok {
		return cat
	}
	return Misc
}

// Names returns every output folder name, Misc last.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// IsOutputFolder reports whether name is one of the folders Resolve produces.
func IsOutputFolder(name string) bool {
	_, ok := outputFolders[name]
	return ok
}
