package scanner

import "testing"

func TestFileMapKeepsCategoryOrder(t *testing.T) {
	m := NewFileMap()
	m.Add(FileEntry{Name: "a.mp3", Category: "Audio"})
	m.Add(FileEntry{Name: "b.png", Category: "Images"})
	m.Add(FileEntry{Name: "c.wav", Category: "Audio"})

	if got := m.Categories(); !equalStrings(got, []string{"Audio", "Images"}) {
		t.Fatalf("Categories() = %v", got)
	}
	if got := names(m.All()); !equalStrings(got, []string{"a.mp3", "c.wav", "b.png"}) {
		t.Fatalf("All() = %v", got)
	}
	if m.Total() != 3 || m.Len() != 2 {
		t.Fatalf("Total() = %d, Len() = %d", m.Total(), m.Len())
	}
}

func TestFileMapTotalMatchesAllAfterCopy(t *testing.T) {
	original := NewFileMap()
	original.Add(FileEntry{Name: "a.mp3", Category: "Audio"})

	copied := original
	copied.Add(FileEntry{Name: "b.png", Category: "Images"})

	if got, want := original.Total(), len(original.All()); got != want {
		t.Fatalf("original Total() = %d, len(All()) = %d", got, want)
	}
	if got, want := copied.Total(), len(copied.All()); got != want {
		t.Fatalf("copy Total() = %d, len(All()) = %d", got, want)
	}
}
