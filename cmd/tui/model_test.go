package main

import (
	"LatticeDb/internal/interpreter/eval"
	"LatticeDb/internal/server"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestExecResultUpdatesModel(t *testing.T) {
	m := newModel("http://localhost:8080")
	result := &eval.Result{
		Columns: []string{"id", "name"},
		Rows:    [][]string{{"1", "Alice"}, {"2", "Bob"}},
	}

	updated, _ := m.Update(execMsg{result: result})
	got := updated.(model)

	if got.status != "Execution succeeded" || got.loading || got.err != nil {
		t.Errorf("state after success: status %q loading %v err %v", got.status, got.loading, got.err)
	}
	if got.last != result {
		t.Errorf("last result not kept")
	}
	for _, want := range []string{"id", "name", "Alice", "Bob", "2 row(s) in set"} {
		if !strings.Contains(got.output, want) {
			t.Errorf("output missing %q:\n%s", want, got.output)
		}
	}
}

func TestExecErrorUpdatesModel(t *testing.T) {
	m := newModel("http://localhost:8080")

	updated, _ := m.Update(execMsg{err: errors.New("table users not found")})
	got := updated.(model)

	if got.status != "Execution failed" || got.err == nil {
		t.Errorf("state after failure: status %q err %v", got.status, got.err)
	}
	if !strings.Contains(got.output, "table users not found") {
		t.Errorf("output %q", got.output)
	}
	if !strings.Contains(got.View(), "Execution failed") {
		t.Errorf("view does not show status")
	}
}

func TestMessageResult(t *testing.T) {
	m := newModel("http://localhost:8080")

	updated, _ := m.Update(execMsg{result: &eval.Result{Message: "2 row(s) deleted", RowsAffected: 2}})
	if got := updated.(model).output; got != "2 row(s) deleted" {
		t.Errorf("output %q", got)
	}

	updated, _ = m.Update(execMsg{result: &eval.Result{Columns: []string{"id"}, Rows: [][]string{}}})
	if got := updated.(model).output; !strings.Contains(got, "Empty set") {
		t.Errorf("empty output %q", got)
	}
}

func TestEnterRunsStatement(t *testing.T) {
	m := newModel("http://db")
	var gotAddr, gotSQL string
	m.exec = func(addr, sql string) tea.Cmd {
		gotAddr, gotSQL = addr, sql
		return func() tea.Msg { return nil }
	}
	m.input.SetValue("  SELECT * FROM users  ")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updated.(model)

	if cmd == nil {
		t.Fatal("expected a command")
	}
	if gotAddr != "http://db" || gotSQL != "SELECT * FROM users" {
		t.Errorf("exec(%q, %q)", gotAddr, gotSQL)
	}
	if !got.loading || got.input.Value() != "" {
		t.Errorf("loading %v input %q", got.loading, got.input.Value())
	}
}

func TestQuitCommands(t *testing.T) {
	m := newModel("http://db")
	m.input.SetValue(":q")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf(":q did not quit")
	}

	_, cmd = newModel("http://db").Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("ctrl+c did not quit")
	}
}

func TestExecuteSQLAgainstServer(t *testing.T) {
	srv := server.New(eval.NewEvaluator(t.TempDir()), &eval.Session{})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	for _, sql := range []string{
		"CREATE DATABASE shop",
		"USE shop",
		"CREATE TABLE users (id int PRIMARY KEY, name string)",
		"INSERT INTO users VALUES (1, 'Alice')",
	} {
		if _, err := executeSQL(ts.URL, sql); err != nil {
			t.Fatalf("%s: %v", sql, err)
		}
	}

	result, err := executeSQL(ts.URL+"/", "SELECT name FROM users")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(result.Rows) != 1 || result.Rows[0][0] != "Alice" {
		t.Errorf("rows %v", result.Rows)
	}

	if _, err := executeSQL(ts.URL, "SELECT * FROM missing"); err == nil {
		t.Error("expected error for missing table")
	}
}

func TestServerURL(t *testing.T) {
	tests := map[string]string{
		":8080":                 "http://localhost:8080",
		"db.local:9000":         "http://db.local:9000",
		"http://localhost:8080": "http://localhost:8080",
		"https://db.example":    "https://db.example",
	}
	for in, want := range tests {
		if got := serverURL(in); got != want {
			t.Errorf("serverURL(%q) = %q, want %q", in, got, want)
		}
	}
}
