package webserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f1racepredictor/pkg/model"
	"f1racepredictor/pkg/pipeline"
	"f1racepredictor/pkg/tracks"
)

type testPredictor struct {
	PredictFunc func(ctx context.Context, track tracks.Track) (*pipeline.Report, error)
}

func (p *testPredictor) Predict(ctx context.Context, track tracks.Track) (*pipeline.Report, error) {
	return p.PredictFunc(ctx, track)
}

func newTestPredictor(t *testing.T) *testPredictor {
	return &testPredictor{
		PredictFunc: func(ctx context.Context, track tracks.Track) (*pipeline.Report, error) {
			t.Error("Predict should not be called")
			return nil, nil
		},
	}
}

func do(t *testing.T, m *Manager, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	m.Router().ServeHTTP(rec, req)
	return rec
}

func TestEvents(t *testing.T) {
	m := NewManager(":0", newTestPredictor(t), nil)
	rec := do(t, m, "/events")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var ts []tracks.Track
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ts))
	assert.Len(t, ts, 23)
}

func TestPrediction(t *testing.T) {
	p := newTestPredictor(t)
	p.PredictFunc = func(ctx context.Context, track tracks.Track) (*pipeline.Report, error) {
		assert.Equal(t, "Emilia Romagna", track.Name)
		return &pipeline.Report{
			Event:       track.Name,
			Predictions: []model.PredictionResult{{Driver: "VER", PredictedLapTime: 80.1}},
			MAE:         0.2,
		}, nil
	}
	m := NewManager(":0", p, nil)

	for _, path := range []string{"/predictions/emilia_romagna", "/predictions/Emilia%20Romagna"} {
		rec := do(t, m, path)
		require.Equal(t, http.StatusOK, rec.Code, path)

		var r pipeline.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
		assert.Equal(t, "Emilia Romagna", r.Event)
		require.Len(t, r.Predictions, 1)
		assert.Equal(t, "VER", r.Predictions[0].Driver)
	}
}

func TestPredictionUnknownEvent(t *testing.T) {
	m := NewManager(":0", newTestPredictor(t), nil)
	rec := do(t, m, "/predictions/saudi_arabia")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPredictionNoData(t *testing.T) {
	p := newTestPredictor(t)
	p.PredictFunc = func(ctx context.Context, track tracks.Track) (*pipeline.Report, error) {
		return nil, &pipeline.StageError{Stage: pipeline.StageRetrieval, Err: errors.Wrap(pipeline.ErrNoData, "Monaco")}
	}
	rec := do(t, NewManager(":0", p, nil), "/predictions/monaco")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var e errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, "retrieval", e.Stage)
}

func TestPredictionFailure(t *testing.T) {
	p := newTestPredictor(t)
	p.PredictFunc = func(ctx context.Context, track tracks.Track) (*pipeline.Report, error) {
		return nil, errors.New("bluh")
	}
	rec := do(t, NewManager(":0", p, nil), "/predictions/monaco")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServeStopsOnCancel(t *testing.T) {
	m := NewManager("127.0.0.1:0", newTestPredictor(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, m.Serve(ctx))
}
