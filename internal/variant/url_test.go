package variant

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL_DbSnp(t *testing.T) {
	u, err := BuildURL(DbSnp, "rs334", "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(u, "?dbsnp=rs334"), u)
	assert.Equal(t, DefaultReportURL+"?dbsnp=rs334", u)
}

func TestBuildURL_ClinGen(t *testing.T) {
	u, err := BuildURL(ClinGenAllele, "ca123643", HG19)
	require.NoError(t, err)
	assert.Equal(t, DefaultReportURL+"?clingen=ca123643", u)
}

func TestBuildURL_HGVS(t *testing.T) {
	u, err := BuildURL(Hgvs, "nm_000000.1:c.76a>t", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultReportURL+"?hgvs=NM_000000.1%3Ac.76A%3ET", u)

	parsed, err := url.Parse(u)
	require.NoError(t, err)
	assert.Equal(t, "NM_000000.1:c.76A>T", parsed.Query().Get("hgvs"))
}

func TestBuildURL_Coordinates(t *testing.T) {
	u, err := BuildURL(Coordinates, "7:117559590:a:t", HG38)
	require.NoError(t, err)
	assert.Equal(t,
		DefaultReportURL+"?assembly=hg38&chrom=chr7&pos=117559590&ref_base=a&alt_base=t", u)

	u, err = BuildURL(Coordinates, "chrmt 100 - g", HG19)
	require.NoError(t, err)
	assert.Equal(t,
		DefaultReportURL+"?assembly=hg19&chrom=chrm&pos=100&ref_base=-&alt_base=g", u)
}

func TestBuildURL_CoordinatesRoundTrip(t *testing.T) {
	inputs := []string{
		"chr7 117559590 a t",
		"x.5.ac.gt",
		"mt\t16000\tacgt\t-",
		"22;+12;a;c",
		"1 0x1f c g",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			coord, ok := ParseCoordinates(input)
			require.True(t, ok)

			u, err := BuildURL(Coordinates, input, HG38)
			require.NoError(t, err)

			parsed, err := url.Parse(u)
			require.NoError(t, err)
			q := parsed.Query()
			assert.Equal(t, "hg38", q.Get("assembly"))
			assert.Equal(t, coord.Chrom, q.Get("chrom"))
			assert.Equal(t, coord.Pos, q.Get("pos"))
			assert.Equal(t, coord.Ref, q.Get("ref_base"))
			assert.Equal(t, coord.Alt, q.Get("alt_base"))
		})
	}
}

func TestBuildURL_Preconditions(t *testing.T) {
	_, err := BuildURL(Unrecognized, "junk", HG38)
	assert.ErrorIs(t, err, ErrUnrecognized)

	_, err = BuildURL(Category(99), "junk", HG38)
	assert.ErrorIs(t, err, ErrUnrecognized)

	_, err = BuildURL(Coordinates, "chr1 1 a t", "")
	assert.ErrorIs(t, err, ErrMissingAssembly)

	_, err = BuildURL(Coordinates, "chr1 1 a t", "grch37")
	assert.ErrorIs(t, err, ErrInvalidAssembly)

	_, err = BuildURL(Coordinates, "rs334", HG38)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestURLBuilder_CustomBase(t *testing.T) {
	b := NewURLBuilder("http://localhost:8060/webapps/variantreport/index.html")
	u, err := b.Build(DbSnp, "rs334", "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8060/webapps/variantreport/index.html?dbsnp=rs334", u)

	assert.Equal(t, DefaultReportURL, NewURLBuilder("").BaseURL)

	var zero URLBuilder
	u, err = zero.Build(ClinGenAllele, "ca1", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultReportURL+"?clingen=ca1", u)
}

func TestParseAssembly(t *testing.T) {
	a, err := ParseAssembly("HG38 ")
	require.NoError(t, err)
	assert.Equal(t, HG38, a)

	a, err = ParseAssembly("hg19")
	require.NoError(t, err)
	assert.Equal(t, HG19, a)

	_, err = ParseAssembly("")
	assert.ErrorIs(t, err, ErrMissingAssembly)

	_, err = ParseAssembly("grch38")
	assert.ErrorIs(t, err, ErrInvalidAssembly)

	assert.True(t, HG38.Valid())
	assert.False(t, Assembly("hg18").Valid())
}
