package cmd

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP processing endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		mux := http.NewServeMux()
		mux.HandleFunc("/api/process", a.handleProcess)
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		mux.Handle("/metrics", a.metrics.Handler())

		log.Infof("Listening on %s", a.cfg.ListenAddr)
		return http.ListenAndServe(a.cfg.ListenAddr, mux)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func (a *app) handleProcess(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		http.Error(w, "missing filename query parameter", http.StatusBadRequest)
		return
	}

	rep, err := a.orch.Process(r.Context(), filename)
	if err != nil {
		log.Errorf("Failed to process %s: %v", filename, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rep); err != nil {
		log.Errorf("Failed to write response for %s: %v", filename, err)
	}
}
