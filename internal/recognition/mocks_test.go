package recognition_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/howardginsburg/ImageAIProcessor/internal/face"
	"github.com/howardginsburg/ImageAIProcessor/internal/geometry"
	"github.com/howardginsburg/ImageAIProcessor/internal/vision"
)

// MockIdentityStore is a mock implementation of the identity store.
type MockIdentityStore struct {
	mock.Mock
}

func (m *MockIdentityStore) FindSimilar(ctx context.Context, faceIDs []string) ([]face.SearchResult, error) {
	args := m.Called(ctx, faceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]face.SearchResult), args.Error(1)
}

func (m *MockIdentityStore) CreatePerson(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityStore) RenamePerson(ctx context.Context, personID string, name string) error {
	args := m.Called(ctx, personID, name)
	return args.Error(0)
}

func (m *MockIdentityStore) AddFace(ctx context.Context, personID string, imageRef string, rect geometry.Rect) error {
	args := m.Called(ctx, personID, imageRef, rect)
	return args.Error(0)
}

// MockFaceDetector is a mock implementation of the face detector.
type MockFaceDetector struct {
	mock.Mock
}

func (m *MockFaceDetector) DetectFaces(ctx context.Context, imageRef string) ([]face.DetectedFace, error) {
	args := m.Called(ctx, imageRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]face.DetectedFace), args.Error(1)
}

// MockCelebrityDetector is a mock implementation of the celebrity detector.
type MockCelebrityDetector struct {
	mock.Mock
}

func (m *MockCelebrityDetector) DetectCelebrities(ctx context.Context, imageRef string) ([]vision.CelebrityMatch, error) {
	args := m.Called(ctx, imageRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vision.CelebrityMatch), args.Error(1)
}
