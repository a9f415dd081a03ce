package scanner

// FileEntry describes one candidate file found during a scan.
type FileEntry struct {
	Path       string `json:"path"`
	Name       string `json:"name"`
	Ext        string `json:"ext"`
	Size       int64  `json:"size"`
	Executable bool   `json:"executable"`
	Category   string `json:"category"`
}

// FileMap is an ordered Category -> []FileEntry mapping. Categories keep the
// order in which they were first seen.
type FileMap struct {
	order   []string
	entries map[string][]FileEntry
}

// NewFileMap returns an empty map.
func NewFileMap() FileMap {
	return FileMap{entries: make(map[string][]FileEntry)}
}

// Add appends entry under its category.
func (m *FileMap) Add(entry FileEntry) {
	if m.entries == nil {
		m.entries = make(map[string][]FileEntry)
	}
	if _, ok := m.entries[entry.Category]; !ok {
		m.order = append(m.order, entry.Category)
	}
	m.entries[entry.Category] = append(m.entries[entry.Category], entry)
}

// Categories returns the category names in first-seen order.
func (m FileMap) Categories() []string {
	return append([]string(nil), m.order...)
}

// Files returns the entries for cat in scan order.
func (m FileMap) Files(cat string) []FileEntry {
	return append([]FileEntry(nil), m.entries[cat]...)
}

// Len returns the number of categories.
func (m FileMap) Len() int {
	return len(m.order)
}

// Total returns the number of files across all categories.
func (m FileMap) Total() int {
	total := 0
	for _, cat := range m.order {
		total += len(m.entries[cat])
	}
	return total
}

// All returns every entry, categories in map order.
func (m FileMap) All() []FileEntry {
	out := make([]FileEntry, 0, m.Total())
	for _, cat := range m.order {
		out = append(out, m.entries[cat]...)
	}
	return out
}

// Empty reports whether the map holds no files.
func (m FileMap) Empty() bool {
	return len(m.order) == 0
}
