package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/virtsec/sevok/internal/hwcaps"
	sevokerrors "github.com/virtsec/sevok/pkg/errors"
)

type stubSource struct{}

func (stubSource) VendorName() string                  { return "AuthenticAMD" }
func (stubSource) IsAMD() bool                         { return true }
func (stubSource) BrandName() string                   { return "AMD EPYC 7543" }
func (stubSource) MemEncryption() hwcaps.MemEncryption { return hwcaps.NewMemEncryption(hwcaps.Leaf{}) }

func TestParseVariant(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  Variant
	}{
		{"", Es},
		{"sev", Sev},
		{"es", Es},
		{"SEV", Sev},
		{"sev-es", Es},
	}
	for _, tc := range cases {
		got, err := ParseVariant(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		require.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestParseVariantRejectsUnknownSelector(t *testing.T) {
	t.Parallel()

	_, err := ParseVariant("tdx")
	require.Error(t, err)

	var validationErr *sevokerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "generation", validationErr.Field)
}

func TestBuildSevCatalogShape(t *testing.T) {
	t.Parallel()

	cat := Build(Sev, stubSource{})

	require.Len(t, cat.Groups, 4)
	require.Len(t, cat.Groups[0], 1)
	require.Len(t, cat.Groups[1], 1)
	require.Len(t, cat.Groups[2], 2)
	require.Len(t, cat.Groups[3], 5)
	require.Len(t, cat.System, 5)
	require.Equal(t, 14, cat.Len())
}

func TestBuildEsAddsExactlyOneTierFourProbe(t *testing.T) {
	t.Parallel()

	sev := Build(Sev, stubSource{})
	es := Build(Es, stubSource{})

	require.Equal(t, sev.Len()+1, es.Len())
	require.Len(t, es.Groups, 5)

	extra := es.Groups[4]
	require.Len(t, extra, 1)
	require.Equal(t, "AMD SEV-ES", extra[0].Name())
	require.Equal(t, 4, extra[0].Tier())
}

func TestBuildTiersAscend(t *testing.T) {
	t.Parallel()

	cat := Build(Es, stubSource{})

	prev := 0
	for _, group := range cat.Groups {
		for _, probe := range group {
			require.GreaterOrEqual(t, probe.Tier(), prev)
			prev = probe.Tier()
		}
	}
	for _, probe := range cat.System {
		require.Equal(t, 5, probe.Tier())
	}
}
