package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"main/model"
)

// In-memory store fakes shared by the tests in this package.

type fakeTaskStore struct {
	tasks    map[string]*model.Task
	subtasks map[string]*model.Subtask

	estimateWrites map[string]int
	failEstimate   bool
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{
		tasks:          map[string]*model.Task{},
		subtasks:       map[string]*model.Subtask{},
		estimateWrites: map[string]int{},
	}
}

func (f *fakeTaskStore) attach(t *model.Task) {
	t.Subtasks = nil
	var children []*model.Subtask
	for _, st := range f.subtasks {
		if st.TaskID == t.TaskID {
			children = append(children, st)
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		if children[i].OrderIndex != children[j].OrderIndex {
			return children[i].OrderIndex < children[j].OrderIndex
		}
		return children[i].CreatedAt.Before(children[j].CreatedAt)
	})
	t.Subtasks = children
}

func (f *fakeTaskStore) ListActive(_ context.Context, userID string) ([]*model.Task, error) {
	var out []*model.Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			f.attach(t)
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TaskID < out[j].TaskID
	})
	return out, nil
}

func (f *fakeTaskStore) GetTask(_ context.Context, taskID, userID string) (*model.Task, error) {
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	f.attach(t)
	return t, nil
}

func (f *fakeTaskStore) CreateTask(_ context.Context, task *model.Task) error {
	f.tasks[task.TaskID] = task
	return nil
}

func (f *fakeTaskStore) UpdateTask(_ context.Context, task *model.Task) error {
	if _, ok := f.tasks[task.TaskID]; !ok {
		return errors.New("no such task")
	}
	f.tasks[task.TaskID] = task
	return nil
}

func (f *fakeTaskStore) DeleteTask(_ context.Context, taskID, _ string) error {
	delete(f.tasks, taskID)
	for id, st := range f.subtasks {
		if st.TaskID == taskID {
			delete(f.subtasks, id)
		}
	}
	return nil
}

func (f *fakeTaskStore) UpdateEstimate(_ context.Context, taskID, _ string, estimateMin int) error {
	if f.failEstimate {
		return errors.New("write failed")
	}
	f.estimateWrites[taskID]++
	if t, ok := f.tasks[taskID]; ok {
		t.EstimateMin = estimateMin
	}
	return nil
}

func (f *fakeTaskStore) GetSubtask(_ context.Context, subtaskID, userID string) (*model.Subtask, error) {
	st, ok := f.subtasks[subtaskID]
	if !ok {
		return nil, nil
	}
	parent, ok := f.tasks[st.TaskID]
	if !ok || parent.UserID != userID {
		return nil, nil
	}
	return st, nil
}

func (f *fakeTaskStore) SaveSubtask(_ context.Context, subtask *model.Subtask) error {
	f.subtasks[subtask.SubtaskID] = subtask
	return nil
}

func (f *fakeTaskStore) ListSubtasks(_ context.Context, taskID string) ([]*model.Subtask, error) {
	var out []*model.Subtask
	for _, st := range f.subtasks {
		if st.TaskID == taskID {
			out = append(out, st)
		}
	}
	return out, nil
}

type fakeFocusLogStore struct {
	logs       []*model.FocusLog
	failInsert bool
}

func (f *fakeFocusLogStore) Insert(_ context.Context, log *model.FocusLog) error {
	if f.failInsert {
		return errors.New("insert failed")
	}
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeFocusLogStore) Overlapping(_ context.Context, userID string, start, end time.Time) ([]*model.FocusLog, error) {
	var out []*model.FocusLog
	for _, l := range f.logs {
		if l.UserID == userID && l.StartedAt.Before(end) && l.StoppedAt.After(start) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeFocusLogStore) Since(_ context.Context, userID string, since time.Time) ([]*model.FocusLog, error) {
	var out []*model.FocusLog
	for _, l := range f.logs {
		if l.UserID == userID && !l.StartedAt.Before(since) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeFocusLogStore) TotalForTask(_ context.Context, userID, taskID string) (int64, error) {
	var total int64
	for _, l := range f.logs {
		if l.UserID == userID && l.TaskID == taskID {
			total += l.Seconds
		}
	}
	return total, nil
}

type fakeProfileStore struct {
	profiles map[string]*model.UserProfile
	answers  map[string][]model.DiagnosisAnswer
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		profiles: map[string]*model.UserProfile{},
		answers:  map[string][]model.DiagnosisAnswer{},
	}
}

func (f *fakeProfileStore) Get(_ context.Context, userID string) (*model.UserProfile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	p := &model.UserProfile{
		UserID:           userID,
		AutoSort:         true,
		ArchiveAfterDays: model.DefaultArchiveAfterDays,
	}
	f.profiles[userID] = p
	return p, nil
}

func (f *fakeProfileStore) Update(_ context.Context, profile *model.UserProfile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeProfileStore) ReplaceDiagnosis(_ context.Context, userID string, answers []model.DiagnosisAnswer) error {
	f.answers[userID] = answers
	return nil
}

type fakeSortLogSink struct {
	entries []*model.SortLog
	fail    bool
}

func (f *fakeSortLogSink) Record(_ context.Context, log *model.SortLog) error {
	if f.fail {
		return errors.New("record failed")
	}
	f.entries = append(f.entries, log)
	return nil
}

type fakeUserStore struct {
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}}
}

func (f *fakeUserStore) AddUser(_ context.Context, user *model.User) error {
	f.users[user.UserID] = user
	return nil
}

func (f *fakeUserStore) FindUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindUser(_ context.Context, userID string) (*model.User, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, nil
}
