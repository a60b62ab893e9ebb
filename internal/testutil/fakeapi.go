// Package testutil provides an in-process fake of the remote OKR API plus
// domain fixtures. The fake keeps its whole state in memory and implements
// the same endpoints, status codes, and cascade-delete semantics the real
// store advertises, so client and controller tests can run without a
// network or a server deployment.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/okrtree/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtSecret signs fake login tokens. Clients only ever parse these
// unverified, so the value is arbitrary.
var jwtSecret = []byte("okrtree-test")

// FakeAPI is an in-memory OKR store behind an httptest server.
type FakeAPI struct {
	mu sync.Mutex

	users      map[string]*domain.User
	passwords  map[string]string
	objectives map[string]*domain.Objective // children never populated here
	tasks      map[string]*domain.Task
	nextObjID  int64
	taskOrder  []string

	failures map[string]int // exact request path -> forced status

	srv *httptest.Server
}

// NewFakeAPI starts a fake OKR API server. It is shut down when the test
// completes.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		users:      make(map[string]*domain.User),
		passwords:  make(map[string]string),
		objectives: make(map[string]*domain.Objective),
		tasks:      make(map[string]*domain.Task),
		failures:   make(map[string]int),
	}
	f.srv = httptest.NewServer(f.handler())
	t.Cleanup(f.srv.Close)
	return f
}

// URL returns the base URL of the fake server.
func (f *FakeAPI) URL() string { return f.srv.URL }

// FailPath forces every request for the exact path to fail with the given
// status until ClearFailures is called.
func (f *FakeAPI) FailPath(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = status
}

// ClearFailures removes all forced failures.
func (f *FakeAPI) ClearFailures() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = make(map[string]int)
}

// ── direct state manipulation for fixtures ──────────────────────────────────

// AddUser registers a user directly, bypassing the HTTP surface.
func (f *FakeAPI) AddUser(empID, name, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[empID] = &domain.User{EmpID: empID, Name: name, Email: empID + "@example.com", Role: "EMPLOYEE"}
	f.passwords[empID] = password
}

// AddObjective inserts an objective directly and returns its assigned ID.
// parentID may be empty for roots.
func (f *FakeAPI) AddObjective(title string, parentID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insertObjective(domain.Objective{
		Title:       title,
		Description: title,
		Level:       domain.LevelCompany,
	}, parentID)
}

// AddTask inserts a task directly and returns its assigned ID.
func (f *FakeAPI) AddTask(objectiveID, title string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	task := &domain.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: title,
		DueDate:     time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		Status:      domain.TaskPending,
		ObjectiveID: objectiveID,
	}
	f.tasks[task.ID] = task
	f.taskOrder = append(f.taskOrder, task.ID)
	return task.ID
}

// ObjectiveCount reports how many objectives the store currently holds.
func (f *FakeAPI) ObjectiveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objectives)
}

// TaskCount reports how many tasks the store currently holds.
func (f *FakeAPI) TaskCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

// ── HTTP surface ────────────────────────────────────────────────────────────

func (f *FakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users/register", f.handleRegister)
	mux.HandleFunc("POST /users/login", f.handleLogin)
	mux.HandleFunc("GET /users/empid-name-map", f.authed(f.handleUsersMap))
	mux.HandleFunc("GET /users/{empId}", f.authed(f.handleGetUser))
	mux.HandleFunc("PUT /users/{empId}", f.authed(f.handleUpdateUser))
	mux.HandleFunc("GET /users/{empId}/tasks", f.authed(f.handleUserTasks))

	mux.HandleFunc("POST /objectives", f.authed(f.handleCreateObjective))
	mux.HandleFunc("GET /objectives/trees", f.authed(f.handleRoots))
	mux.HandleFunc("GET /objectives/tree/{id}", f.authed(f.handleTree))
	mux.HandleFunc("GET /objectives/{id}", f.authed(f.handleGetObjective))
	mux.HandleFunc("PUT /objectives/{id}", f.authed(f.handleUpdateObjective))
	mux.HandleFunc("DELETE /objectives/{id}", f.authed(f.handleDeleteObjective))

	mux.HandleFunc("POST /tasks/{objectiveId}", f.authed(f.handleCreateTask))
	mux.HandleFunc("GET /tasks/objective/{objectiveId}", f.authed(f.handleTasksByObjective))
	mux.HandleFunc("PUT /tasks/{taskId}", f.authed(f.handleUpdateTask))
	mux.HandleFunc("DELETE /tasks/{taskId}", f.authed(f.handleDeleteTask))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		status, forced := f.failures[r.URL.Path]
		f.mu.Unlock()
		if forced {
			writeError(w, status, "forced failure")
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// authed rejects requests without a bearer token. Token contents are not
// verified; presence is what the contract requires.
func (f *FakeAPI) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			writeError(w, http.StatusUnauthorized, "missing credential")
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// ── users ───────────────────────────────────────────────────────────────────

func (f *FakeAPI) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in struct {
		EmpID    string `json:"empId"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[in.EmpID]; exists {
		writeError(w, http.StatusConflict, "employee ID already registered")
		return
	}
	u := &domain.User{EmpID: in.EmpID, Name: in.Name, Email: in.Email, Role: "EMPLOYEE"}
	f.users[in.EmpID] = u
	f.passwords[in.EmpID] = in.Password
	writeJSON(w, http.StatusCreated, u)
}

func (f *FakeAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		EmpID    string `json:"empId"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[in.EmpID]
	if !ok || f.passwords[in.EmpID] != in.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	claims := jwt.MapClaims{
		"sub":  u.EmpID,
		"role": u.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "signing token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": u})
}

func (f *FakeAPI) handleUsersMap(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := make(map[string]string, len(f.users))
	for id, u := range f.users {
		m[id] = u.Name
	}
	writeJSON(w, http.StatusOK, m)
}

func (f *FakeAPI) handleGetUser(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[r.PathValue("empId")]
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (f *FakeAPI) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[r.PathValue("empId")]
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	u.Name = in.Name
	u.Email = in.Email
	writeJSON(w, http.StatusOK, u)
}

func (f *FakeAPI) handleUserTasks(w http.ResponseWriter, r *http.Request) {
	empID := r.PathValue("empId")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Task{}
	for _, id := range f.taskOrder {
		task, ok := f.tasks[id]
		if !ok {
			continue
		}
		for _, a := range task.AssignedTo {
			if a == empID {
				out = append(out, *task)
				break
			}
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// ── objectives ──────────────────────────────────────────────────────────────

// insertObjective assigns a numeric ID and stores the objective.
// Caller holds the lock.
func (f *FakeAPI) insertObjective(o domain.Objective, parentID string) string {
	f.nextObjID++
	o.ID = strconv.FormatInt(f.nextObjID, 10)
	o.Children = nil
	if parentID != "" {
		o.ParentID = &parentID
		if p, ok := f.objectives[parentID]; ok {
			o.TreeLevel = p.TreeLevel + 1
		}
	} else {
		o.ParentID = nil
		o.TreeLevel = 0
	}
	f.objectives[o.ID] = &o
	return o.ID
}

func (f *FakeAPI) handleCreateObjective(w http.ResponseWriter, r *http.Request) {
	var in domain.Objective
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	parentID := r.URL.Query().Get("parentId")
	f.mu.Lock()
	defer f.mu.Unlock()
	if parentID != "" {
		if _, ok := f.objectives[parentID]; !ok {
			writeError(w, http.StatusNotFound, "parent objective not found")
			return
		}
	}
	id := f.insertObjective(in, parentID)
	writeJSON(w, http.StatusCreated, f.objectives[id])
}

// sortedIDs returns objective IDs in numeric (append) order.
// Caller holds the lock.
func (f *FakeAPI) sortedIDs() []string {
	ids := make([]string, 0, len(f.objectives))
	for id := range f.objectives {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.ParseInt(ids[i], 10, 64)
		b, _ := strconv.ParseInt(ids[j], 10, 64)
		return a < b
	})
	return ids
}

func (f *FakeAPI) handleRoots(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Objective{}
	for _, id := range f.sortedIDs() {
		if o := f.objectives[id]; o.ParentID == nil {
			summary := *o
			summary.Children = nil
			out = append(out, &summary)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// buildTree clones the subtree rooted at id with children populated.
// Caller holds the lock.
func (f *FakeAPI) buildTree(id string) *domain.Objective {
	src, ok := f.objectives[id]
	if !ok {
		return nil
	}
	node := *src
	node.Children = nil
	for _, childID := range f.sortedIDs() {
		c := f.objectives[childID]
		if c.ParentID != nil && *c.ParentID == id {
			node.Children = append(node.Children, f.buildTree(childID))
		}
	}
	return &node
}

func (f *FakeAPI) handleTree(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tree := f.buildTree(r.PathValue("id"))
	if tree == nil {
		writeError(w, http.StatusNotFound, "objective not found")
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (f *FakeAPI) handleGetObjective(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.objectives[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "objective not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (f *FakeAPI) handleUpdateObjective(w http.ResponseWriter, r *http.Request) {
	var in domain.Objective
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.objectives[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "objective not found")
		return
	}
	o.Title = in.Title
	o.Description = in.Description
	o.Level = in.Level
	o.ProgressPercentage = in.ProgressPercentage
	writeJSON(w, http.StatusOK, o)
}

func (f *FakeAPI) handleDeleteObjective(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := r.PathValue("id")
	if _, ok := f.objectives[id]; !ok {
		writeError(w, http.StatusNotFound, "objective not found")
		return
	}
	f.cascadeDelete(id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "objective deleted"})
}

// cascadeDelete removes an objective, its entire subtree, and all attached
// tasks. Caller holds the lock.
func (f *FakeAPI) cascadeDelete(id string) {
	for _, childID := range f.sortedIDs() {
		c := f.objectives[childID]
		if c.ParentID != nil && *c.ParentID == id {
			f.cascadeDelete(childID)
		}
	}
	for taskID, task := range f.tasks {
		if task.ObjectiveID == id {
			delete(f.tasks, taskID)
		}
	}
	delete(f.objectives, id)
}

// ── tasks ───────────────────────────────────────────────────────────────────

func (f *FakeAPI) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in domain.Task
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	objectiveID := r.PathValue("objectiveId")
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objectives[objectiveID]; !ok {
		writeError(w, http.StatusNotFound, "objective not found")
		return
	}
	in.ID = uuid.New().String()
	in.ObjectiveID = objectiveID
	f.tasks[in.ID] = &in
	f.taskOrder = append(f.taskOrder, in.ID)
	writeJSON(w, http.StatusCreated, &in)
}

func (f *FakeAPI) handleTasksByObjective(w http.ResponseWriter, r *http.Request) {
	objectiveID := r.PathValue("objectiveId")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Task{}
	for _, id := range f.taskOrder {
		if task, ok := f.tasks[id]; ok && task.ObjectiveID == objectiveID {
			out = append(out, *task)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var in domain.Task
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[r.PathValue("taskId")]
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	task.Title = in.Title
	task.Description = in.Description
	task.DueDate = in.DueDate
	task.Status = in.Status
	task.AssignedTo = in.AssignedTo
	task.ProgressPercentage = in.ProgressPercentage
	writeJSON(w, http.StatusOK, task)
}

func (f *FakeAPI) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := r.PathValue("taskId")
	if _, ok := f.tasks[id]; !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	delete(f.tasks, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}
