package asimplevectors

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
)

const fakeRootToken = "root-token"

// fakeServer is an in-memory stand-in for an asimplevectors node. It keeps
// just enough state to exercise every client operation.
type fakeServer struct {
	t   *testing.T
	srv *httptest.Server

	mu          sync.Mutex
	spaces      map[string]*fakeSpace
	nextSpaceID int64
	keys        map[string]map[string]string
	snapshots   map[string][]byte
	snapshotSeq []string
	uploads     []fakeUpload
	restored    []string
	tokens      map[string]TokenRequest
	nextTokenID int
	requireAuth bool
	metricsBody string
	kvField     string

	lastHeaders http.Header
	lastBodies  map[string][]byte
}

type fakeSpace struct {
	id             int64
	fields         map[string]json.RawMessage
	versions       map[int64]*fakeVersion
	nextVersion    int64
	defaultVersion int64
}

type fakeVersion struct {
	info    Version
	vectors map[int64]Vector
	order   []int64
}

type fakeUpload struct {
	field    string
	fileName string
	content  []byte
}

const fakeMetricsBody = `{"Ok":{
	"id":1,"state":"Leader","current_term":3,"current_leader":1,
	"vote":{"leader_id":{"term":3,"node_id":1},"committed":true},
	"last_log_index":42,
	"last_applied":{"leader_id":{"term":3,"node_id":1},"index":42},
	"snapshot":null,"purged":null,
	"millis_since_quorum_ack":0,"last_quorum_acked":1700000000000,
	"membership_config":{"log_id":{"leader_id":{"term":1,"node_id":1},"index":5},
		"membership":{"configs":[[1,2]],"nodes":{
			"1":{"rpc_addr":"127.0.0.1:21002","api_addr":"127.0.0.1:21001"},
			"2":{"rpc_addr":"127.0.0.1:22002","api_addr":"127.0.0.1:22001"}}}},
	"heartbeat":{"1":null,"2":1700000000000},
	"replication":{"1":{"leader_id":{"term":3,"node_id":1},"index":42},"2":null},
	"running_state":{"Ok":null}
}}`

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	f := &fakeServer{
		t:           t,
		spaces:      map[string]*fakeSpace{},
		keys:        map[string]map[string]string{},
		snapshots:   map[string][]byte{},
		snapshotSeq: []string{"20240115", "20240116", "20240117"},
		tokens:      map[string]TokenRequest{},
		metricsBody: fakeMetricsBody,
		kvField:     "text",
		lastBodies:  map[string][]byte{},
	}
	f.tokens[fakeRootToken] = TokenRequest{
		System: PermissionWrite, Space: PermissionWrite, Version: PermissionWrite,
		Vector: PermissionWrite, Search: PermissionWrite, Snapshot: PermissionWrite,
		Security: PermissionWrite, KeyValue: PermissionWrite,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /cluster/init", f.ok)
	mux.HandleFunc("POST /cluster/add-learner", f.ok)
	mux.HandleFunc("POST /cluster/change-membership", f.ok)
	mux.HandleFunc("GET /cluster/metrics", f.clusterMetrics)

	mux.HandleFunc("POST /api/space", f.createSpace)
	mux.HandleFunc("GET /api/space/{name}", f.getSpace)
	mux.HandleFunc("POST /api/space/{name}", f.updateSpace)
	mux.HandleFunc("DELETE /api/space/{name}", f.deleteSpace)
	mux.HandleFunc("GET /api/spaces", f.listSpaces)

	mux.HandleFunc("POST /api/space/{name}/version", f.createVersion)
	mux.HandleFunc("GET /api/space/{name}/versions", f.listVersions)
	mux.HandleFunc("GET /api/space/{name}/version", f.getVersion)
	mux.HandleFunc("GET /api/space/{name}/version/{id}", f.getVersion)
	mux.HandleFunc("DELETE /api/space/{name}/version/{id}", f.deleteVersion)

	mux.HandleFunc("POST /api/space/{name}/vector", f.upsertVectors)
	mux.HandleFunc("POST /api/space/{name}/version/{id}/vector", f.upsertVectors)
	mux.HandleFunc("GET /api/space/{name}/vectors", f.listVectors)
	mux.HandleFunc("GET /api/space/{name}/version/{id}/vectors", f.listVectors)
	mux.HandleFunc("POST /api/space/{name}/search", f.search)
	mux.HandleFunc("POST /api/space/{name}/version/{id}/search", f.search)
	mux.HandleFunc("POST /api/space/{name}/rerank", f.rerank)
	mux.HandleFunc("POST /api/space/{name}/version/{id}/rerank", f.rerank)

	mux.HandleFunc("POST /api/space/{name}/key/{key}", f.putKey)
	mux.HandleFunc("GET /api/space/{name}/key/{key}", f.getKey)
	mux.HandleFunc("DELETE /api/space/{name}/key/{key}", f.deleteKey)
	mux.HandleFunc("GET /api/space/{name}/keys", f.listKeys)

	mux.HandleFunc("POST /api/snapshot", f.createSnapshot)
	mux.HandleFunc("GET /api/snapshots", f.listSnapshots)
	mux.HandleFunc("GET /snapshot/{date}/download", f.downloadSnapshot)
	mux.HandleFunc("POST /api/snapshot/{date}/restore", f.restoreSnapshot)
	mux.HandleFunc("DELETE /api/snapshot/{date}/delete", f.deleteSnapshot)
	mux.HandleFunc("POST /api/snapshots/restore", f.uploadSnapshot)

	mux.HandleFunc("POST /api/security/tokens", f.createToken)
	mux.HandleFunc("GET /api/security/tokens", f.listTokens)
	mux.HandleFunc("PUT /api/security/tokens/{token}", f.updateToken)
	mux.HandleFunc("DELETE /api/security/tokens/{token}", f.deleteToken)

	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.lastHeaders = r.Header.Clone()
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

// client returns a client pointed at the fake server.
func (f *fakeServer) client() *Client {
	f.t.Helper()
	c, err := NewClient(FromEndpoint(f.srv.URL))
	if err != nil {
		f.t.Fatalf("failed to create client: %v", err)
	}
	return c
}

// configure mutates the fake's settings under its lock.
func (f *fakeServer) configure(fn func(*fakeServer)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeServer) headers() http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastHeaders.Clone()
}

func (f *fakeServer) body(route string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastBodies[route]
}

func (f *fakeServer) archive(date string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshots[date]
}

func (f *fakeServer) uploaded() []fakeUpload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fakeUpload(nil), f.uploads...)
}

func (f *fakeServer) restoredDates() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.restored...)
}

func (f *fakeServer) spaceField(name, field string) json.RawMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.spaces[name]; ok {
		return s.fields[field]
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (f *fakeServer) ok(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.lastBodies[r.URL.Path] = raw
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"Ok": nil})
}

// readBody records the raw request body under route and decodes it into v.
func (f *fakeServer) readBody(w http.ResponseWriter, r *http.Request, route string, v interface{}) bool {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	f.lastBodies[route] = raw
	if v == nil {
		return true
	}
	if err := json.Unmarshal(raw, v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// authorize enforces RBAC when requireAuth is set. Callers hold f.mu.
func (f *fakeServer) authorize(w http.ResponseWriter, r *http.Request, level func(TokenRequest) Permission, want Permission) bool {
	if !f.requireAuth {
		return true
	}
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	perms, ok := f.tokens[token]
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return false
	}
	if level(perms) < want {
		writeError(w, http.StatusForbidden, "insufficient permission")
		return false
	}
	return true
}

func spaceLevel(p TokenRequest) Permission    { return p.Space }
func securityLevel(p TokenRequest) Permission { return p.Security }

func (f *fakeServer) clusterMetrics(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	body := f.metricsBody
	f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func (f *fakeServer) createSpace(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.authorize(w, r, spaceLevel, PermissionWrite) {
		return
	}
	var fields map[string]json.RawMessage
	if !f.readBody(w, r, "create_space", &fields) {
		return
	}
	var name string
	_ = json.Unmarshal(fields["name"], &name)
	if _, exists := f.spaces[name]; exists {
		writeError(w, http.StatusConflict, "space already exists")
		return
	}
	f.nextSpaceID++
	space := &fakeSpace{id: f.nextSpaceID, fields: fields, versions: map[int64]*fakeVersion{}}
	space.addVersion(VersionRequest{Name: "default", IsDefault: true})
	f.spaces[name] = space
	writeJSON(w, http.StatusOK, map[string]string{"result": "success"})
}

func (s *fakeSpace) addVersion(req VersionRequest) *fakeVersion {
	s.nextVersion++
	v := &fakeVersion{
		info: Version{
			ID: s.nextVersion, Name: req.Name, Description: req.Description, Tag: req.Tag,
			IsDefault: req.IsDefault, CreatedTimeUTC: 1700000000 + s.nextVersion, UpdatedTimeUTC: 1700000000 + s.nextVersion,
		},
		vectors: map[int64]Vector{},
	}
	if req.IsDefault || s.defaultVersion == 0 {
		for _, other := range s.versions {
			other.info.IsDefault = false
		}
		v.info.IsDefault = true
		s.defaultVersion = v.info.ID
	}
	s.versions[v.info.ID] = v
	return v
}

// lookup resolves the space and version addressed by r. Callers hold f.mu.
func (f *fakeServer) lookup(w http.ResponseWriter, r *http.Request) (*fakeSpace, *fakeVersion, bool) {
	space, ok := f.spaces[r.PathValue("name")]
	if !ok {
		writeError(w, http.StatusNotFound, "space not found")
		return nil, nil, false
	}
	id := space.defaultVersion
	if raw := r.PathValue("id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad version id")
			return nil, nil, false
		}
		id = parsed
	}
	version, ok := space.versions[id]
	if !ok {
		writeError(w, http.StatusNotFound, "version not found")
		return nil, nil, false
	}
	return space, version, true
}

func (f *fakeServer) getSpace(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	space, version, ok := f.lookup(w, r)
	if !ok {
		return
	}
	var dimension int
	_ = json.Unmarshal(space.fields["dimension"], &dimension)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"spaceId":          space.id,
		"name":             r.PathValue("name"),
		"created_time_utc": 1700000000,
		"updated_time_utc": 1700000001,
		"version": map[string]interface{}{
			"versionId": version.info.ID,
			"vectorIndices": []map[string]interface{}{{
				"vectorIndexId": 1, "name": "default", "dimension": dimension,
				"metricType": 0, "vectorValueType": 0, "is_default": true,
				"created_time_utc": 1700000000, "updated_time_utc": 1700000001,
			}},
		},
	})
}

func (f *fakeServer) updateSpace(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.authorize(w, r, spaceLevel, PermissionWrite) {
		return
	}
	space, ok := f.spaces[r.PathValue("name")]
	if !ok {
		writeError(w, http.StatusNotFound, "space not found")
		return
	}
	var fields map[string]json.RawMessage
	if !f.readBody(w, r, "update_space", &fields) {
		return
	}
	for k, v := range fields {
		space.fields[k] = v
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "success"})
}

func (f *fakeServer) deleteSpace(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.authorize(w, r, spaceLevel, PermissionWrite) {
		return
	}
	name := r.PathValue("name")
	if _, ok := f.spaces[name]; !ok {
		writeError(w, http.StatusNotFound, "space not found")
		return
	}
	delete(f.spaces, name)
	delete(f.keys, name)
	writeJSON(w, http.StatusOK, map[string]string{"result": "success"})
}

func (f *fakeServer) listSpaces(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values := make([]map[string]interface{}, 0, len(f.spaces))
	for name, space := range f.spaces {
		var description string
		_ = json.Unmarshal(space.fields["description"], &description)
		values = append(values, map[string]interface{}{
			"id": space.id, "name": name, "description": description,
			"created_time_utc": 1700000000, "updated_time_utc": 1700000001,
		})
	}
	sort.Slice(values, func(i, j int) bool { return values[i]["id"].(int64) < values[j]["id"].(int64) })
	writeJSON(w, http.StatusOK, map[string]interface{}{"values": values})
}

func (f *fakeServer) createVersion(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	space, ok := f.spaces[r.PathValue("name")]
	if !ok {
		writeError(w, http.StatusNotFound, "space not found")
		return
	}
	var req VersionRequest
	if !f.readBody(w, r, "create_version", &req) {
		return
	}
	space.addVersion(req)
	writeJSON(w, http.StatusOK, map[string]string{"result": "success"})
}

func (f *fakeServer) listVersions(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	space, ok := f.spaces[r.PathValue("name")]
	if !ok {
		writeError(w, http.StatusNotFound, "space not found")
		return
	}
	all := make([]Version, 0, len(space.versions))
	for _, v := range space.versions {
		all = append(all, v.info)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	start, limit := pageParams(r, len(all))
	writeJSON(w, http.StatusOK, VersionList{TotalCount: len(all), Values: page(all, start, limit)})
}

func (f *fakeServer) getVersion(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, version, ok := f.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, version.info)
}

func (f *fakeServer) deleteVersion(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	space, version, ok := f.lookup(w, r)
	if !ok {
		return
	}
	delete(space.versions, version.info.ID)
	if space.defaultVersion == version.info.ID {
		space.defaultVersion = 0
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "success"})
}

func (f *fakeServer) upsertVectors(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, version, ok := f.lookup(w, r)
	if !ok {
		return
	}
	var req upsertRequest
	if !f.readBody(w, r, "upsert", &req) {
		return
	}
	for _, v := range req.Vectors {
		if _, exists := version.vectors[v.ID]; !exists {
			version.order = append(version.order, v.ID)
		}
		version.vectors[v.ID] = v
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "success"})
}

func (f *fakeServer) listVectors(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, version, ok := f.lookup(w, r)
	if !ok {
		return
	}
	start, limit := pageParams(r, len(version.order))
	ids := page(version.order, start, limit)
	out := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		v := version.vectors[id]
		out = append(out, map[string]interface{}{
			"id":       v.ID,
			"data":     map[string]interface{}{"data": v.Data},
			"metadata": v.Metadata,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"vectors": out, "total_count": len(version.order)})
}

func l2(a, b []float32) float32 {
	var sum float64
	for i := range a {
		if i >= len(b) {
			break
		}
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum))
}

func (f *fakeServer) ranked(version *fakeVersion, query []float32) []SearchResult {
	results := make([]SearchResult, 0, len(version.vectors))
	for _, id := range version.order {
		results = append(results, SearchResult{Label: id, Distance: l2(query, version.vectors[id].Data)})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })
	return results
}

func (f *fakeServer) search(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, version, ok := f.lookup(w, r)
	if !ok {
		return
	}
	var req SearchRequest
	if !f.readBody(w, r, "search", &req) {
		return
	}
	results := f.ranked(version, req.Vector)
	if req.TopK > 0 && len(results) > req.TopK {
		results = results[:req.TopK]
	}
	writeJSON(w, http.StatusOK, results)
}

func (f *fakeServer) rerank(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, version, ok := f.lookup(w, r)
	if !ok {
		return
	}
	var req RerankRequest
	if !f.readBody(w, r, "rerank", &req) {
		return
	}
	var results []RerankResult
	for _, hit := range f.ranked(version, req.Vector) {
		var score float32
		for _, token := range version.vectors[hit.Label].DocTokens {
			for _, q := range req.Tokens {
				if token == q {
					score++
				}
			}
		}
		results = append(results, RerankResult{ID: hit.Label, Distance: hit.Distance, BM25Score: score})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].BM25Score > results[j].BM25Score })
	if req.TopK > 0 && len(results) > req.TopK {
		results = results[:req.TopK]
	}
	writeJSON(w, http.StatusOK, results)
}

func (f *fakeServer) putKey(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name := r.PathValue("name")
	if _, ok := f.spaces[name]; !ok {
		writeError(w, http.StatusNotFound, "space not found")
		return
	}
	var req putKeyRequest
	if !f.readBody(w, r, "put_key", &req) {
		return
	}
	if f.keys[name] == nil {
		f.keys[name] = map[string]string{}
	}
	f.keys[name][r.PathValue("key")] = req.Text
	writeJSON(w, http.StatusOK, map[string]string{"result": "success"})
}

func (f *fakeServer) getKey(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.keys[r.PathValue("name")][r.PathValue("key")]
	if !ok {
		writeError(w, http.StatusNotFound, "key not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{f.kvField: value})
}

func (f *fakeServer) deleteKey(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name, key := r.PathValue("name"), r.PathValue("key")
	if _, ok := f.keys[name][key]; !ok {
		writeError(w, http.StatusNotFound, "key not found")
		return
	}
	delete(f.keys[name], key)
	writeJSON(w, http.StatusOK, map[string]string{"result": "success"})
}

func (f *fakeServer) listKeys(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]string, 0, len(f.keys[r.PathValue("name")]))
	for k := range f.keys[r.PathValue("name")] {
		all = append(all, k)
	}
	sort.Strings(all)
	start, limit := pageParams(r, len(all))
	writeJSON(w, http.StatusOK, KeyList{TotalCount: len(all), Keys: page(all, start, limit)})
}

func (f *fakeServer) createSnapshot(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.readBody(w, r, "create_snapshot", nil) {
		return
	}
	if len(f.snapshotSeq) == 0 {
		writeError(w, http.StatusInternalServerError, "no more snapshot dates")
		return
	}
	date := f.snapshotSeq[0]
	f.snapshotSeq = f.snapshotSeq[1:]
	f.snapshots[date] = []byte("PK\x03\x04 archive " + date)
	writeJSON(w, http.StatusOK, map[string]string{"result": "success"})
}

func (f *fakeServer) listSnapshots(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dates := make([]string, 0, len(f.snapshots))
	for date := range f.snapshots {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	out := make([]map[string]string, 0, len(dates))
	for _, date := range dates {
		out = append(out, map[string]string{"file_name": SnapshotFileName(date)})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"snapshots": out})
}

func (f *fakeServer) downloadSnapshot(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	archive, ok := f.snapshots[r.PathValue("date")]
	f.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "snapshot not found")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	_, _ = w.Write(archive)
}

func (f *fakeServer) restoreSnapshot(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	date := r.PathValue("date")
	if _, ok := f.snapshots[date]; !ok {
		writeError(w, http.StatusNotFound, "snapshot not found")
		return
	}
	f.restored = append(f.restored, date)
	writeJSON(w, http.StatusOK, map[string]string{"result": "success"})
}

func (f *fakeServer) deleteSnapshot(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	date := r.PathValue("date")
	if _, ok := f.snapshots[date]; !ok {
		writeError(w, http.StatusNotFound, "snapshot not found")
		return
	}
	delete(f.snapshots, date)
	writeJSON(w, http.StatusOK, map[string]string{"result": "success"})
}

func (f *fakeServer) uploadSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	for field, headers := range r.MultipartForm.File {
		for _, h := range headers {
			file, err := h.Open()
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			content, _ := io.ReadAll(file)
			_ = file.Close()
			f.mu.Lock()
			f.uploads = append(f.uploads, fakeUpload{field: field, fileName: h.Filename, content: content})
			f.mu.Unlock()
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "success"})
}

func (f *fakeServer) createToken(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.authorize(w, r, securityLevel, PermissionWrite) {
		return
	}
	var req TokenRequest
	if !f.readBody(w, r, "create_token", &req) {
		return
	}
	f.nextTokenID++
	token := fmt.Sprintf("token-%d", f.nextTokenID)
	f.tokens[token] = req
	writeJSON(w, http.StatusOK, CreatedToken{Result: "success", Token: token})
}

func (f *fakeServer) listTokens(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.authorize(w, r, securityLevel, PermissionRead) {
		return
	}
	names := make([]string, 0, len(f.tokens))
	for name := range f.tokens {
		if name != fakeRootToken {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make([]Token, 0, len(names))
	for i, name := range names {
		p := f.tokens[name]
		out = append(out, Token{
			ID: int64(i + 1), SpaceID: p.SpaceID, Token: name, ExpireTimeUTC: 1900000000,
			System: p.System, Space: p.Space, Version: p.Version, Vector: p.Vector, Search: p.Search,
			Snapshot: p.Snapshot, Security: p.Security, KeyValue: p.KeyValue,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tokens": out})
}

func (f *fakeServer) updateToken(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.authorize(w, r, securityLevel, PermissionWrite) {
		return
	}
	token := r.PathValue("token")
	if _, ok := f.tokens[token]; !ok {
		writeError(w, http.StatusNotFound, "token not found")
		return
	}
	var req TokenRequest
	if !f.readBody(w, r, "update_token", &req) {
		return
	}
	f.tokens[token] = req
	writeJSON(w, http.StatusOK, map[string]string{"result": "success"})
}

func (f *fakeServer) deleteToken(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.authorize(w, r, securityLevel, PermissionWrite) {
		return
	}
	token := r.PathValue("token")
	if _, ok := f.tokens[token]; !ok {
		writeError(w, http.StatusNotFound, "token not found")
		return
	}
	delete(f.tokens, token)
	writeJSON(w, http.StatusOK, map[string]string{"result": "success"})
}

func pageParams(r *http.Request, total int) (int, int) {
	start, limit := 0, total
	if v := r.URL.Query().Get("start"); v != "" {
		start, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	return start, limit
}

func page[T any](items []T, start, limit int) []T {
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
