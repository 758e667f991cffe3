package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeServer emulates the classification service. The uploaded file's
// content scripts the outcome: "<class> <maxProb>" yields a prediction,
// "fail" yields a 500. That keeps per-item outcomes addressable from
// tests that drive whole CLI runs.
func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/model":
			fmt.Fprint(w, `{"model":"resnet50-v2"}`)
		case "/models":
			fmt.Fprint(w, `{"models":["resnet50-v2","efficientnet-b3"]}`)
		case "/model/select":
			var req struct {
				Model string `json:"model"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Model != "resnet50-v2" && req.Model != "efficientnet-b3" {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"error":"no such model"}`)
				return
			}
			fmt.Fprintf(w, `{"model":%q}`, req.Model)
		case "/predict":
			handlePredict(t, w, r)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func handlePredict(t *testing.T, w http.ResponseWriter, r *http.Request) {
	t.Helper()
	file, _, err := r.FormFile("file")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"missing file"}`)
		return
	}
	defer file.Close() //nolint:errcheck // read-only body
	content, err := io.ReadAll(file)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"unreadable file"}`)
		return
	}

	script := strings.TrimSpace(string(content))
	if script == "fail" {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"inference failed"}`)
		return
	}

	var class string
	var maxP float64
	if _, err := fmt.Sscanf(script, "%s %f", &class, &maxP); err != nil {
		class, maxP = "notumor", 0.99
	}
	order := []string{"glioma", "meningioma", "notumor", "pituitary"}
	probs := make([]float64, len(order))
	rest := (1 - maxP) / float64(len(order)-1)
	for i, name := range order {
		if name == class {
			probs[i] = maxP
		} else {
			probs[i] = rest
		}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"class":       class,
		"probability": probs,
	})
}

// runCLI executes one nsc invocation and returns exit code and output.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// setupHome points the XDG dirs at a fresh temp dir so history state is
// isolated per test.
func setupHome(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir+"/.config")
	t.Setenv("XDG_DATA_HOME", dir+"/.data")
}
