package application

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/require"
)

// stubESTransport answers every request with a canned response and records
// what it was asked.
type stubESTransport struct {
	status int
	body   string
	paths  []string
	bodies []string
}

func (t *stubESTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.paths = append(t.paths, req.URL.Path)
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		t.bodies = append(t.bodies, string(b))
	}
	return &http.Response{
		StatusCode: t.status,
		Header: http.Header{
			"X-Elastic-Product": []string{"Elasticsearch"},
			"Content-Type":      []string{"application/json"},
		},
		Body: io.NopCloser(strings.NewReader(t.body)),
	}, nil
}

func newSearchService(t *testing.T, rt http.RoundTripper) *EventService {
	t.Helper()
	svc := newEventService(newFakeEventRepo(), &fakeAssetStore{})
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://stub.invalid:9200"},
		Transport: rt,
	})
	require.NoError(t, err)
	svc.ES = es
	svc.ESIndex = "events"
	return svc
}

func TestSearchWithoutIndexConfigured(t *testing.T) {
	// No ES client at all.
	svc := newEventService(newFakeEventRepo(), &fakeAssetStore{})
	docs, err := svc.Search(context.Background(), "party", 10)
	require.NoError(t, err)
	require.NotNil(t, docs)
	require.Empty(t, docs)

	// Client present but no index name.
	svc = newSearchService(t, &stubESTransport{status: http.StatusOK, body: "{}"})
	svc.ESIndex = ""
	docs, err = svc.Search(context.Background(), "party", 10)
	require.NoError(t, err)
	require.Empty(t, docs)
}

func TestSearchReturnsHitSources(t *testing.T) {
	rt := &stubESTransport{
		status: http.StatusOK,
		body: `{"hits":{"hits":[
			{"_id":"e-1","_source":{"id":"e-1","title":"garden party","rating":5}},
			{"_id":"e-2","_source":{"id":"e-2","title":"party boat","rating":3}}
		]}}`,
	}
	svc := newSearchService(t, rt)

	docs, err := svc.Search(context.Background(), "party", 10)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "garden party", docs[0]["title"])
	require.Equal(t, "party boat", docs[1]["title"])

	require.Equal(t, []string{"/events/_search"}, rt.paths)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(rt.bodies[0]), &sent))
	mm := sent["query"].(map[string]any)["multi_match"].(map[string]any)
	require.Equal(t, "party", mm["query"])
	require.EqualValues(t, 10, sent["size"])
}

func TestSearchClampsSize(t *testing.T) {
	rt := &stubESTransport{status: http.StatusOK, body: `{"hits":{"hits":[]}}`}
	svc := newSearchService(t, rt)

	for _, size := range []int{0, -3, 500} {
		rt.bodies = nil
		_, err := svc.Search(context.Background(), "x", size)
		require.NoError(t, err)

		var sent map[string]any
		require.NoError(t, json.Unmarshal([]byte(rt.bodies[0]), &sent))
		require.EqualValues(t, 10, sent["size"])
	}
}

func TestSearchSurfacesErrorResponses(t *testing.T) {
	// An error payload carries no hits; it must not pass for an empty
	// result set.
	rt := &stubESTransport{
		status: http.StatusNotFound,
		body:   `{"error":{"type":"index_not_found_exception","reason":"no such index [events]"},"status":404}`,
	}
	svc := newSearchService(t, rt)

	docs, err := svc.Search(context.Background(), "party", 10)
	require.Error(t, err)
	require.Nil(t, docs)
}
