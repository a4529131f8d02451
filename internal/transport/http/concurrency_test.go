package http

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlers_ConcurrentRequests(t *testing.T) {
	router := newTestRouter(t, sampleService(t))

	targets := []string{
		"/",
		"/?mode=overall&trend=amount",
		"/?mode=startup&startup=Flipkart&show=1",
		"/?mode=investor&investor=Alibaba&show=1",
		"/api/analysis/overall?trend=amount",
		"/api/charts/overall/top-startups.png",
		"/api/charts/startups/Flipkart/yearly.png",
		"/api/charts/investors/Tiger%20Global/verticals.png",
	}
	const rounds = 8

	codes := make([]int, len(targets)*rounds)
	var wg sync.WaitGroup
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, targets[i%len(targets)], nil))
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		assert.Equal(t, http.StatusOK, code, targets[i%len(targets)])
	}
}
