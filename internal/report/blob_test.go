package report_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/howardginsburg/ImageAIProcessor/internal/geometry"
	"github.com/howardginsburg/ImageAIProcessor/internal/recognition"
	"github.com/howardginsburg/ImageAIProcessor/internal/report"
	"github.com/howardginsburg/ImageAIProcessor/internal/storage"
)

func TestBlobSink_Persist(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	rep := &report.Report{
		Filename:        "party.jpg",
		ResizedFilename: "party.png",
		FaceDetails: []recognition.ResolvedPerson{
			{PersonID: "person-1", CelebrityName: "Famous Person", BoundingBox: geometry.Rect{Left: 1, Top: 2, Width: 3, Height: 4}},
		},
		Narrative:  "A lively party scene.",
		Categories: []string{"Entertainment"},
		Metrics:    map[string]float64{"total_time": 1.25},
	}

	sink := report.NewBlobSink(store, "results")
	require.NoError(t, sink.Persist(ctx, rep))

	data, err := store.Get(ctx, "results", "party.json")
	require.NoError(t, err, "report blob is named after the source stem")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "party.jpg", decoded["filename"])
	assert.Equal(t, "party.png", decoded["resizedfilename"])
	assert.Equal(t, "A lively party scene.", decoded["ainarrative"])
	assert.NotContains(t, decoded, "errors", "errors field is omitted when empty")

	persons := decoded["facedetails"].([]interface{})
	require.Len(t, persons, 1)
	first := persons[0].(map[string]interface{})
	assert.Equal(t, "Famous Person", first["celebrity_name"])
}
