package provision_test

import (
	"context"
	"errors"
	"testing"

	"github.com/girder/girderctl/api/types/assetstores"
	"github.com/girder/girderctl/api/types/plugins"
	"github.com/girder/girderctl/api/types/system"
	gprof "github.com/girder/girderctl/cmd/girderctl/config/profiles"
	grst "github.com/girder/girderctl/cmd/girderctl/rest"
	"github.com/girder/girderctl/internal/testutils/girder"
	"github.com/girder/girderctl/pkg/provision"
	"github.com/girder/girderctl/pkg/utils/cmp"
	"github.com/girder/girderctl/pkg/utils/try"
)

// fakeTask is satisfied once applied.
type fakeTask struct {
	satisfied bool
	applies   int
	checkErr  error
	applyErr  error
}

func (ft *fakeTask) Verify() error {
	return nil
}

func (ft *fakeTask) Check(ctx context.Context, h *provision.Host) (bool, error) {
	if ft.checkErr != nil {
		return false, ft.checkErr
	}
	return ft.satisfied, nil
}

func (ft *fakeTask) Apply(ctx context.Context, h *provision.Host) error {
	ft.applies += 1
	if ft.applyErr != nil {
		return ft.applyErr
	}
	ft.satisfied = true
	return nil
}

func statuses(results []provision.StepResult) []provision.Status {
	s := make([]provision.Status, 0, len(results))
	for _, r := range results {
		s = append(s, r.Status)
	}
	return s
}

func TestApply(t *testing.T) {
	t.Run("satisfied steps are skipped, unsatisfied ones applied", func(t *testing.T) {
		done := &fakeTask{satisfied: true}
		todo := &fakeTask{}
		playbook := provision.Playbook{Steps: []provision.Step{
			{Name: "done", Task: done},
			{Name: "todo", Task: todo},
		}}

		results := try.To(provision.Apply(
			context.Background(), &provision.Host{}, playbook,
		)).OrFatal(t)

		if !cmp.SliceEq(statuses(results), []provision.Status{
			provision.StatusOk, provision.StatusChanged,
		}) {
			t.Errorf("wrong statuses: %v", results)
		}
		if done.applies != 0 {
			t.Error("satisfied task should not be applied")
		}
		if todo.applies != 1 {
			t.Errorf("unsatisfied task should be applied once, but %d times", todo.applies)
		}
	})

	t.Run("applying twice changes nothing the second time", func(t *testing.T) {
		tasks := []*fakeTask{{}, {}, {satisfied: true}}
		playbook := provision.Playbook{Steps: []provision.Step{
			{Name: "a", Task: tasks[0]},
			{Name: "b", Task: tasks[1]},
			{Name: "c", Task: tasks[2]},
		}}
		host := &provision.Host{}

		first := try.To(provision.Apply(context.Background(), host, playbook)).OrFatal(t)
		if !cmp.SliceEq(statuses(first), []provision.Status{
			provision.StatusChanged, provision.StatusChanged, provision.StatusOk,
		}) {
			t.Errorf("wrong statuses on first run: %v", first)
		}

		second := try.To(provision.Apply(context.Background(), host, playbook)).OrFatal(t)
		if !cmp.SliceEq(statuses(second), []provision.Status{
			provision.StatusOk, provision.StatusOk, provision.StatusOk,
		}) {
			t.Errorf("second run should change nothing: %v", second)
		}
		for nth, task := range tasks[:2] {
			if task.applies != 1 {
				t.Errorf("task #%d applied %d times", nth, task.applies)
			}
		}
	})

	t.Run("in check mode, nothing is applied", func(t *testing.T) {
		todo := &fakeTask{}
		playbook := provision.Playbook{Steps: []provision.Step{
			{Name: "todo", Task: todo},
		}}

		results := try.To(provision.Apply(
			context.Background(), &provision.Host{}, playbook,
			provision.WithCheckMode(),
		)).OrFatal(t)

		if !cmp.SliceEq(statuses(results), []provision.Status{provision.StatusWouldChange}) {
			t.Errorf("wrong statuses: %v", results)
		}
		if todo.applies != 0 {
			t.Error("check mode should not apply anything")
		}
	})

	t.Run("the run stops at the first failure", func(t *testing.T) {
		expectedErr := errors.New("fake error")
		failing := &fakeTask{applyErr: expectedErr}
		never := &fakeTask{}
		playbook := provision.Playbook{Steps: []provision.Step{
			{Name: "failing", Task: failing},
			{Name: "never", Task: never},
		}}

		results, err := provision.Apply(context.Background(), &provision.Host{}, playbook)
		if !errors.Is(err, expectedErr) {
			t.Errorf("unexpected error: %v", err)
		}
		if !cmp.SliceEq(statuses(results), []provision.Status{provision.StatusFailed}) {
			t.Errorf("wrong statuses: %v", results)
		}
		if never.applies != 0 {
			t.Error("steps after a failure should not run")
		}
	})

	t.Run("check errors fail the step, too", func(t *testing.T) {
		expectedErr := errors.New("fake error")
		failing := &fakeTask{checkErr: expectedErr}
		playbook := provision.Playbook{Steps: []provision.Step{
			{Name: "failing", Task: failing},
		}}

		_, err := provision.Apply(context.Background(), &provision.Host{}, playbook)
		if !errors.Is(err, expectedErr) {
			t.Errorf("unexpected error: %v", err)
		}
		if failing.applies != 0 {
			t.Error("a step whose check fails should not be applied")
		}
	})

	t.Run("each step's result is notified as it finishes", func(t *testing.T) {
		playbook := provision.Playbook{Steps: []provision.Step{
			{Name: "a", Task: &fakeTask{satisfied: true}},
			{Name: "b", Task: &fakeTask{}},
		}}

		notified := []string{}
		try.To(provision.Apply(
			context.Background(), &provision.Host{}, playbook,
			provision.WithNotify(func(r provision.StepResult) {
				notified = append(notified, r.Name+":"+string(r.Status))
			}),
		)).OrFatal(t)

		if !cmp.SliceEq(notified, []string{"a:ok", "b:changed"}) {
			t.Errorf("wrong notifications: %v", notified)
		}
	})
}

func TestApplyAgainstServer(t *testing.T) {
	t.Run("a second run against the same server has no side effects", func(t *testing.T) {
		server := girder.Server{
			Token: "fake-token",
			Assetstores: []assetstores.Detail{
				{Id: "store-0", Name: "scratch", Type: assetstores.Filesystem, Root: "/tmp/girder", Current: true},
			},
			Plugins: plugins.Status{All: map[string]plugins.Meta{
				"homepage": {Name: "Homepage"},
				"jobs":     {Name: "Jobs"},
			}},
			Version: system.Version{Release: "2.0.0"},
		}
		profile := gprof.GirderProfile{ApiRoot: server.Start(t)}
		client := try.To(grst.NewClient(&profile)).OrFatal(t)
		host := &provision.Host{Client: client}

		playbook := provision.Playbook{Steps: []provision.Step{
			{Name: "wait for girder", Task: &provision.WaitForTask{}},
			{Name: "admin account", Task: &provision.UserTask{
				Login: "admin", Password: "letmein", Email: "admin@example.com",
				FirstName: "Girder", LastName: "Admin", Admin: true,
			}},
			{Name: "default assetstore", Task: &provision.AssetstoreTask{
				Name: "default", Type: "filesystem",
				Root: "/var/lib/girder/assetstore", Current: true,
			}},
			{Name: "plugins", Task: &provision.PluginsTask{
				Names: []string{"homepage", "jobs"},
			}},
		}}

		first := try.To(provision.Apply(context.Background(), host, playbook)).OrFatal(t)
		if !cmp.SliceEq(statuses(first), []provision.Status{
			provision.StatusOk, provision.StatusChanged,
			provision.StatusChanged, provision.StatusChanged,
		}) {
			t.Errorf("wrong statuses on the first run: %v", first)
		}

		second := try.To(provision.Apply(context.Background(), host, playbook)).OrFatal(t)
		if !cmp.SliceEq(statuses(second), []provision.Status{
			provision.StatusOk, provision.StatusOk,
			provision.StatusOk, provision.StatusOk,
		}) {
			t.Errorf("second run should change nothing: %v", second)
		}

		if len(server.CreatedUsers) != 1 || server.CreatedUsers[0].Login != "admin" {
			t.Errorf("admin should be created exactly once: %v", server.CreatedUsers)
		}
		if len(server.CreatedAssetstores) != 1 || server.CreatedAssetstores[0].Name != "default" {
			t.Errorf("assetstore should be created exactly once: %v", server.CreatedAssetstores)
		}
		if len(server.CurrentAssetstores) != 1 {
			t.Errorf("assetstore should be made current exactly once: %v", server.CurrentAssetstores)
		}
		if !cmp.SliceEqWith(
			server.PluginSets, [][]string{{"homepage", "jobs"}}, cmp.SliceEq,
		) {
			t.Errorf("plugins should be set exactly once: %v", server.PluginSets)
		}
	})
}
