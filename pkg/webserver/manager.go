package webserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"f1racepredictor/pkg/caster"
	"f1racepredictor/pkg/pipeline"
	"f1racepredictor/pkg/tracks"
)

type Predictor interface {
	Predict(ctx context.Context, track tracks.Track) (*pipeline.Report, error)
}

type errorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
}

type Manager struct {
	r         *mux.Router
	addr      string
	predictor Predictor
	log       *logrus.Entry

	reportCaster caster.Caster[*pipeline.Report]
	tracksCaster caster.Caster[tracks.Tracks]
	errorCaster  caster.Caster[errorResponse]
}

func NewManager(addr string, predictor Predictor, log *logrus.Entry) *Manager {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	m := &Manager{
		r:            mux.NewRouter(),
		addr:         addr,
		predictor:    predictor,
		log:          log,
		reportCaster: caster.JSONCaster[*pipeline.Report]{},
		tracksCaster: caster.JSONCaster[tracks.Tracks]{},
		errorCaster:  caster.JSONCaster[errorResponse]{},
	}

	m.rootHandlers()
	return m
}

func (m *Manager) Router() http.Handler {
	return m.r
}

func (m *Manager) rootHandlers() {
	m.r.HandleFunc("/events", m.handleEvents).Methods(http.MethodGet)
	m.r.HandleFunc("/predictions/{event}", m.handlePrediction).Methods(http.MethodGet)
}

func (m *Manager) handleEvents(w http.ResponseWriter, r *http.Request) {
	payload, err := m.tracksCaster.To(tracks.All())
	if err != nil {
		m.writeError(w, http.StatusInternalServerError, err)
		return
	}
	m.write(w, http.StatusOK, payload)
}

func (m *Manager) handlePrediction(w http.ResponseWriter, r *http.Request) {
	event := mux.Vars(r)["event"]
	track, err := tracks.GetTrack(event)
	if err != nil {
		m.writeError(w, http.StatusNotFound, err)
		return
	}

	report, err := m.predictor.Predict(r.Context(), track)
	if err != nil {
		m.log.WithError(err).WithField("event", track.Name).Warn("prediction failed")
		status := http.StatusInternalServerError
		if pipeline.IsNoData(err) {
			status = http.StatusUnprocessableEntity
		}
		m.writeError(w, status, err)
		return
	}

	payload, err := m.reportCaster.To(report)
	if err != nil {
		m.writeError(w, http.StatusInternalServerError, err)
		return
	}
	m.write(w, http.StatusOK, payload)
}

func (m *Manager) writeError(w http.ResponseWriter, status int, err error) {
	payload, cerr := m.errorCaster.To(errorResponse{
		Error: err.Error(),
		Stage: string(pipeline.StageOf(err)),
	})
	if cerr != nil {
		http.Error(w, err.Error(), status)
		return
	}
	m.write(w, status, payload)
}

func (m *Manager) write(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		m.log.WithError(err).Debug("writing response")
	}
}

// Serve blocks until ctx is done, then shuts the server down.
func (m *Manager) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         m.addr,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      m.Router(),
	}

	errChan := make(chan error, 1)
	go func() {
		m.log.Infof("webserver listening on %s", m.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return errors.Wrap(err, "webserver")
	case <-ctx.Done():
	}

	// Create a deadline to wait for.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	m.log.Info("webserver shutting down")
	return srv.Shutdown(shutdownCtx)
}
