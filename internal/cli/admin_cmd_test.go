package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"proxym-fin/internal/client"
	"proxym-fin/internal/dto"
	"proxym-fin/internal/session"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEnv(t *testing.T, role string) (*env, *client.StubPlatform) {
	t.Helper()
	stub := client.NewStubPlatform()
	t.Cleanup(stub.Close)

	store, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Login(session.Principal{
		ID:    1,
		Name:  "Admin",
		Email: "admin@proxym.com",
		Role:  role,
		Token: "stub-token",
	}))

	return &env{
		rc:      client.New(stub.URL(), 5*time.Second),
		session: store,
		logger:  zap.NewNop(),
	}, stub
}

func runCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAdminCreateProduct(t *testing.T) {
	e, stub := newTestEnv(t, "ADMIN")

	out, err := runCmd(t, newAdminCreateCmd(e), "product",
		"--field", "name=Flexible Personal Loan",
		"--field", "type=LOAN",
		"--field", "description=Unsecured loan",
		"--field", "interestRate=11.9",
		"--field", "minimumEntry=1000",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Created product")

	rc := client.New(stub.URL(), 5*time.Second)
	products, err := rc.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Flexible Personal Loan", products[0].Name)
}

func TestAdminCreateRejectsUnknownField(t *testing.T) {
	e, stub := newTestEnv(t, "ADMIN")

	_, err := runCmd(t, newAdminCreateCmd(e), "product",
		"--field", "name=Starter Fund",
		"--field", "colour=blue",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown product field "colour"`)

	rc := client.New(stub.URL(), 5*time.Second)
	products, err := rc.Products(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestAdminCreateRejectsMalformedField(t *testing.T) {
	e, _ := newTestEnv(t, "ADMIN")

	_, err := runCmd(t, newAdminCreateCmd(e), "product", "--field", "nameonly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed field")
}

func TestAdminEditProduct(t *testing.T) {
	e, stub := newTestEnv(t, "ADMIN")
	stub.SeedProduct(dto.Product{
		Name:         "Secure Yield Savings",
		Type:         "SAVINGS",
		Description:  "Capital-protected savings",
		InterestRate: 3.5,
		MinimumEntry: decimal.NewFromInt(100),
	})

	out, err := runCmd(t, newAdminEditCmd(e), "product", "1",
		"--field", "interestRate=4.0",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Updated product 1")

	rc := client.New(stub.URL(), 5*time.Second)
	products, err := rc.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	// Untouched fields survive the edit.
	assert.Equal(t, "Secure Yield Savings", products[0].Name)
	assert.Equal(t, 4.0, products[0].InterestRate)
}

func TestAdminCommandsRequireAdminRole(t *testing.T) {
	e, _ := newTestEnv(t, "USER")

	_, err := runCmd(t, newAdminCreateCmd(e), "product", "--field", "name=x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin access required")

	_, err = runCmd(t, newAdminEditCmd(e), "product", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin access required")
}
