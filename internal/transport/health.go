package transport

import "net/http"

// HandleHealthCheck reports that the server is up.
func (c *Controller) HandleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, success{Success: true})
}

// HandleStatus reports ingestion progress.
func (c *Controller) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	c.writeResult(w, c.status.Status())
}
