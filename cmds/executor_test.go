package cmds

import (
	"errors"
	"strings"
	"testing"
)

func TestExecutor(t *testing.T) {
	executor := NewExecutor()

	var depth int
	executor.Define("-default-depth", Func(func() {
		depth = 50
	}))
	executor.Define("-depth", Func(func(i int) {
		depth = i
	}))

	if err := executor.Execute([]string{"-default-depth"}); err != nil {
		t.Fatal(err)
	}
	if depth != 50 {
		t.Fatalf("got %v", depth)
	}

	if err := executor.Execute([]string{"-depth", "3"}); err != nil {
		t.Fatal(err)
	}
	if depth != 3 {
		t.Fatalf("got %v", depth)
	}

	err := executor.Execute([]string{"foo"})
	if err == nil || !strings.Contains(err.Error(), "unknown command: foo") {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{"-depth", "x"})
	if err == nil || !strings.Contains(err.Error(), "convert x to int") {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{"-depth"})
	if err == nil || !strings.Contains(err.Error(), "expecting argument") {
		t.Fatalf("got %v", err)
	}
}

func TestFuncError(t *testing.T) {
	executor := NewExecutor()
	errFoo := errors.New("foo")
	executor.Define("run", Func(func() error {
		return errFoo
	}))
	executor.Define("ok", Func(func() error {
		return nil
	}))
	if err := executor.Execute([]string{"ok"}); err != nil {
		t.Fatal(err)
	}
	if err := executor.Execute([]string{"run"}); !errors.Is(err, errFoo) {
		t.Fatalf("got %v", err)
	}
}

func TestSubCommands(t *testing.T) {
	executor := NewExecutor()
	var obj, verb string
	var runs int
	executor.Define("encode", Sub(map[string]*Command{
		"verb": Func(func(o, v string) {
			obj = o
			verb = v
		}),
		"main": Func(func() {
			runs++
		}),
	}))

	if err := executor.Execute([]string{
		"encode",
		"main",
		"verb", "#1", "foo",
	}); err != nil {
		t.Fatal(err)
	}
	if runs != 1 {
		t.Fatalf("got %v", runs)
	}
	if obj != "#1" || verb != "foo" {
		t.Fatalf("got %v %v", obj, verb)
	}

	if err := executor.Execute([]string{"main"}); err == nil {
		t.Fatal("sub command should not be visible outside its group")
	}
}

func TestDuplicatedSubCommand(t *testing.T) {
	executor := NewExecutor()
	executor.Define("foo", Sub(map[string]*Command{
		"a": nil,
	}))
	executor.Define("bar", Sub(map[string]*Command{
		"a": nil,
	}))
	err := executor.Execute([]string{"foo", "bar"})
	if err == nil || !strings.Contains(err.Error(), "duplicated sub command: bar a") {
		t.Fatalf("got %v", err)
	}
}

func TestDuplicatedCommand(t *testing.T) {
	executor := NewExecutor()
	defer func() {
		if recover() == nil {
			t.Fatal("should panic")
		}
	}()
	executor.Define("help", Func(func() {}))
}

func TestOptionalArgument(t *testing.T) {
	executor := NewExecutor()
	var n int
	var s string
	executor.Define("foo", Func(func(arg *int, arg2 *string) {
		n = *arg
		s = *arg2
	}))

	if err := executor.Execute([]string{"foo", "42", "bar"}); err != nil {
		t.Fatal(err)
	}
	if n != 42 || s != "bar" {
		t.Fatalf("got %v %q", n, s)
	}

	if err := executor.Execute([]string{"foo", "99"}); err != nil {
		t.Fatal(err)
	}
	if n != 99 || s != "" {
		t.Fatalf("got %v %q", n, s)
	}

	if err := executor.Execute([]string{"foo"}); err != nil {
		t.Fatal(err)
	}
	if n != 0 || s != "" {
		t.Fatalf("got %v %q", n, s)
	}
}

func TestBadFunc(t *testing.T) {
	for _, fn := range []any{
		42,
		func() int { return 1 },
		func() (error, error) { return nil, nil },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("should panic for %T", fn)
				}
			}()
			Func(fn)
		}()
	}
}
