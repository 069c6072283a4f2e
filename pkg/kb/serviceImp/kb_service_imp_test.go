package serviceImp

import (
	"strings"
	"testing"

	"botanica/entities"
)

type fakeRepo struct {
	docs   []*entities.KBDocument
	chunks []entities.KBChunk
}

func (f *fakeRepo) CreateDoc(d *entities.KBDocument) error {
	d.DocID = uint(len(f.docs) + 1)
	f.docs = append(f.docs, d)
	return nil
}
func (f *fakeRepo) BulkInsertChunks(chs []entities.KBChunk) error {
	f.chunks = append(f.chunks, chs...)
	return nil
}
func (f *fakeRepo) ListDocs() ([]entities.KBDocument, error) { return nil, nil }
func (f *fakeRepo) AllChunks() ([]entities.KBChunk, error) { return f.chunks, nil }
func (f *fakeRepo) DocsByIDs([]uint) (map[uint]entities.KBDocument, error) {
	return nil, nil
}

func TestChunkTextSplitsOnNewlineAfterLimit(t *testing.T) {
	para := strings.Repeat("a", 600) + "\n"
	parts := chunkText(para+para+para, 1000)
	if len(parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(parts))
	}
}

func TestChunkTextEmpty(t *testing.T) {
	if parts := chunkText("", 1000); parts != nil {
		t.Errorf("empty text should produce no chunks, got %d", len(parts))
	}
}

func TestSearchKeywordFallback(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, nil)

	if _, n, err := svc.UpsertDocument("Frost care", "frost", "Protect citrus from frost with fleece.\nWater in the morning.", ""); err != nil || n == 0 {
		t.Fatalf("upsert: n=%d err=%v", n, err)
	}
	if _, _, err := svc.UpsertDocument("Pruning", "pruning", "Prune figs in late winter.", ""); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	hits, err := svc.Search("citrus frost protection", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) == 0 {
		t.Fatal("no hits for keyword query")
	}
	if !strings.Contains(hits[0].Text, "frost") {
		t.Errorf("top hit should mention frost: %q", hits[0].Text)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := New(&fakeRepo{}, nil)
	hits, err := svc.Search("   ", 5)
	if err != nil || hits != nil {
		t.Errorf("blank query: hits=%v err=%v", hits, err)
	}
}
