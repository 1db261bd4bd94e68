package docingest

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicetask/docingest/ai/mock"
	"github.com/voicetask/docingest/chunk"
	"github.com/voicetask/docingest/core"
	docintelmock "github.com/voicetask/docingest/docintel/mock"
	"github.com/voicetask/docingest/extract"
)

func uploaded(name, content string) *core.UploadedFile {
	return &core.UploadedFile{Name: name, Data: bytes.NewReader([]byte(content))}
}

func newTestIngestor(t *testing.T, opts ...Option) *Ingestor {
	t.Helper()

	extractor := extract.NewExtractor(docintelmock.NewMockAnalyzer())
	ing, err := NewIngestor(extractor, opts...)
	require.NoError(t, err)
	t.Cleanup(ing.Release)
	return ing
}

func TestNewIngestor(t *testing.T) {
	t.Run("nil extractor", func(t *testing.T) {
		_, err := NewIngestor(nil)
		assert.Equal(t, ErrExtractorRequired, err)
	})

	t.Run("with options", func(t *testing.T) {
		ing := newTestIngestor(t,
			WithPoolSize(2),
			WithSplitter(chunk.NewSplitter(chunk.WithChunkSize(10), chunk.WithChunkOverlap(2))),
			WithLogger(nil),
		)
		assert.NotNil(t, ing)
	})
}

func TestIngest_ChunksArtifacts(t *testing.T) {
	ing := newTestIngestor(t, WithSplitter(
		chunk.NewSplitter(chunk.WithChunkSize(10), chunk.WithChunkOverlap(0)),
	))

	text := "aaa bbb\nccc ddd\neee fff"
	report, err := ing.Ingest(context.Background(), []*core.UploadedFile{
		uploaded("notes.txt", text),
	}, t.TempDir())
	require.NoError(t, err)
	require.Len(t, report.Documents, 1)

	doc := report.Documents[0]
	require.NoError(t, doc.Err)
	assert.Equal(t, core.IDFromContent("notes.txt"), doc.ID)
	assert.NotEmpty(t, doc.Chunks)
	assert.Equal(t, text, strings.Join(doc.Chunks, ""))
	assert.Nil(t, doc.Vectors)
}

func TestIngest_EmbedsChunks(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	ing := newTestIngestor(t, WithEmbedder(embedder), WithPoolSize(2))

	report, err := ing.Ingest(context.Background(), []*core.UploadedFile{
		uploaded("one.txt", "first document"),
		uploaded("two.txt", "second document"),
	}, t.TempDir())
	require.NoError(t, err)
	require.Len(t, report.Documents, 2)

	for _, doc := range report.Documents {
		require.NoError(t, doc.Err)
		require.Len(t, doc.Vectors, len(doc.Chunks))
	}
	assert.Equal(t, "one.txt", report.Documents[0].Name)
	assert.Equal(t, "two.txt", report.Documents[1].Name)
}

func TestIngest_EmbeddingFailureRecordedPerDocument(t *testing.T) {
	boom := errors.New("embedding backend down")
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, boom
	}
	ing := newTestIngestor(t, WithEmbedder(embedder))

	report, err := ing.Ingest(context.Background(), []*core.UploadedFile{
		uploaded("doc.txt", "some text"),
	}, t.TempDir())
	require.NoError(t, err)
	require.Len(t, report.Documents, 1)
	assert.ErrorIs(t, report.Documents[0].Err, boom)
}

func TestIngest_FailedFilesCarryNoChunks(t *testing.T) {
	ing := newTestIngestor(t)

	report, err := ing.Ingest(context.Background(), []*core.UploadedFile{
		uploaded("good.txt", "fine"),
		uploaded("image.jpeg", "not supported"),
	}, t.TempDir())
	require.NoError(t, err)
	require.Len(t, report.Documents, 2)

	assert.NoError(t, report.Documents[0].Err)
	assert.ErrorIs(t, report.Documents[1].Err, core.ErrUnsupportedFileType)
	assert.Empty(t, report.Documents[1].Chunks)

	paths := report.ArtifactPaths()
	require.Len(t, paths, 1)
	assert.Contains(t, paths[0], "good_extracted.txt")
}
