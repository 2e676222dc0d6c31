package organize

import "strings"

// FallbackCategory is where files with unmapped extensions go
const FallbackCategory = "Other"

// DefaultCategories returns the built-in extension → folder mapping.
// Callers get a fresh copy; mutating it does not affect later calls.
func DefaultCategories() map[string]string {
	return map[string]string{
		".py":    "Python_Code",
		".ipynb": "Notebooks",
		".txt":   "Documents",
		".md":    "Documents",
		".pdf":   "Documents",
		".docx":  "Documents",
		".xlsx":  "Spreadsheets",
		".csv":   "Spreadsheets",
		".png":   "Images",
		".jpg":   "Images",
		".jpeg":  "Images",
		".gif":   "Images",
		".bmp":   "Images",
		".mp3":   "Audio",
		".wav":   "Audio",
		".mp4":   "Video",
		".mov":   "Video",
		".zip":   "Archives",
		".tar":   "Archives",
		".gz":    "Archives",
		".json":  "Data",
		".xml":   "Data",
		".html":  "Web",
		".css":   "Web",
		".js":    "Web",
	}
}

// CategoryFor maps a file extension to its category folder. Matching is
// case-insensitive; unmapped extensions (and files without one) fall back
// to FallbackCategory.
func CategoryFor(ext string, categories map[string]string) string {
	if category, ok := categories[strings.ToLower(ext)]; ok {
		return category
	}
	return FallbackCategory
}
