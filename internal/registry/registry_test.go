package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vporto/almanac/internal/registry"
	"github.com/vporto/almanac/pkg/domain"
)

func echoTool(name string) domain.Tool {
	return domain.Tool{Name: name, Description: "test tool"}
}

func TestExecute_UnknownTool(t *testing.T) {
	d := registry.New(nil)

	res := d.Execute(context.Background(), "does_not_exist", nil)

	assert.Equal(t, domain.OutcomeUnknownTool, res.Outcome)
	assert.Contains(t, res.Text, "'does_not_exist' not found")
}

func TestExecute_InjectsOptionalDefaults(t *testing.T) {
	d := registry.New(nil)

	var seen map[string]any
	tool := domain.Tool{
		Name: "greet",
		Params: []domain.Param{
			{Name: "name", Required: true},
			{Name: "salutation", Default: "hello"},
		},
	}
	d.Register(tool, func(ctx context.Context, args map[string]any) (domain.Result, error) {
		seen = args
		return domain.OK("ok"), nil
	})

	caller := map[string]any{"name": "ada"}
	res := d.Execute(context.Background(), "greet", caller)

	require.Equal(t, domain.OutcomeOK, res.Outcome)
	assert.Equal(t, "ada", seen["name"])
	assert.Equal(t, "hello", seen["salutation"])
	// The caller's map must not be mutated.
	_, mutated := caller["salutation"]
	assert.False(t, mutated)
}

func TestExecute_ContainsHandlerError(t *testing.T) {
	d := registry.New(nil)
	d.Register(echoTool("boom"), func(ctx context.Context, args map[string]any) (domain.Result, error) {
		return domain.Result{}, errors.New("wire exploded")
	})

	res := d.Execute(context.Background(), "boom", nil)

	assert.Equal(t, domain.OutcomeRemoteFault, res.Outcome)
	assert.Contains(t, res.Text, "Error executing boom")
	assert.Contains(t, res.Text, "wire exploded")
}

func TestExecute_ContainsHandlerPanic(t *testing.T) {
	d := registry.New(nil)
	d.Register(echoTool("panicky"), func(ctx context.Context, args map[string]any) (domain.Result, error) {
		panic("nil map write")
	})

	res := d.Execute(context.Background(), "panicky", nil)

	assert.Equal(t, domain.OutcomeRemoteFault, res.Outcome)
	assert.Contains(t, res.Text, "nil map write")
}

func TestList_StableAndIdempotent(t *testing.T) {
	d := registry.New(nil)
	names := []string{"zeta", "alpha", "mid"}
	for _, n := range names {
		d.Register(echoTool(n), func(ctx context.Context, args map[string]any) (domain.Result, error) {
			return domain.OK(""), nil
		})
	}

	first := d.List()
	require.Len(t, first, 3)
	for i, n := range names {
		assert.Equal(t, n, first[i].Name)
	}

	// Repeated calls return the identical sequence; mutating the returned
	// slice must not leak into the registry.
	first[0] = echoTool("hijacked")
	second := d.List()
	for i, n := range names {
		assert.Equal(t, n, second[i].Name)
	}
}

func TestRegister_ReplaceKeepsPosition(t *testing.T) {
	d := registry.New(nil)
	d.Register(echoTool("a"), func(ctx context.Context, args map[string]any) (domain.Result, error) {
		return domain.OK("old"), nil
	})
	d.Register(echoTool("b"), func(ctx context.Context, args map[string]any) (domain.Result, error) {
		return domain.OK(""), nil
	})
	d.Register(echoTool("a"), func(ctx context.Context, args map[string]any) (domain.Result, error) {
		return domain.OK("new"), nil
	})

	list := d.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)

	res := d.Execute(context.Background(), "a", nil)
	assert.Equal(t, "new", res.Text)
}
