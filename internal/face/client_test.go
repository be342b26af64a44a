package face_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/howardginsburg/ImageAIProcessor/internal/face"
	"github.com/howardginsburg/ImageAIProcessor/internal/faults"
	"github.com/howardginsburg/ImageAIProcessor/internal/geometry"
)

func TestDetectFaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("Ocp-Apim-Subscription-Key"))
		assert.Equal(t, "true", r.URL.Query().Get("returnFaceId"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://blobs.example.com/pic.png", body["url"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"faceId": "f-1", "faceRectangle": {"left": 10, "top": 20, "width": 30, "height": 40}},
			{"faceId": "f-2", "faceRectangle": {"left": 50, "top": 60, "width": 70, "height": 80}}
		]`))
	}))
	defer server.Close()

	client := face.NewClient(server.URL, "secret")
	faces, err := client.DetectFaces(context.Background(), "https://blobs.example.com/pic.png")
	require.NoError(t, err)
	require.Len(t, faces, 2)
	assert.Equal(t, "f-1", faces[0].FaceID)
	assert.Equal(t, geometry.Rect{Left: 10, Top: 20, Width: 30, Height: 40}, faces[0].Rectangle)
}

func TestDetectFaces_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := face.NewClient(server.URL, "secret")
	_, err := client.DetectFaces(context.Background(), "https://blobs.example.com/pic.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrDetection)
}

func TestFindSimilar(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body["faceIds"], 2)
		assert.Equal(t, []interface{}{"*"}, body["personIds"], "search spans all persons")

		w.Write([]byte(`[
			{"faceId": "f-1", "candidates": [{"personId": "p-9", "confidence": 0.97}]},
			{"faceId": "f-2", "candidates": []}
		]`))
	}))
	defer server.Close()

	client := face.NewClient(server.URL, "secret")
	results, err := client.FindSimilar(context.Background(), []string{"f-1", "f-2"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "p-9", results[0].Candidates[0].PersonID)
	assert.Empty(t, results[1].Candidates)
}

func TestCreatePerson(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Unknown", body["name"])
		w.Write([]byte(`{"personId": "p-new"}`))
	}))
	defer server.Close()

	client := face.NewClient(server.URL, "secret")
	id, err := client.CreatePerson(context.Background(), "Unknown")
	require.NoError(t, err)
	assert.Equal(t, "p-new", id)
}

func TestAddFace_TargetFaceQuery(t *testing.T) {
	var gotTarget string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTarget = r.URL.Query().Get("targetFace")
		w.Write([]byte(`{"persistedFaceId": "pf-1"}`))
	}))
	defer server.Close()

	client := face.NewClient(server.URL, "secret")
	err := client.AddFace(context.Background(), "p-9", "https://blobs.example.com/pic.png",
		geometry.Rect{Left: 1, Top: 2, Width: 3, Height: 4})
	require.NoError(t, err)
	assert.Equal(t, "1,2,3,4", gotTarget)
}

func TestRenamePerson_ErrorWrapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := face.NewClient(server.URL, "secret")
	err := client.RenamePerson(context.Background(), "p-9", "Famous Person")
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrIdentityStore)
}
