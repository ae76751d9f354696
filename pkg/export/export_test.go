package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/golang/snappy"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/regnet-monotone/pkg/config"
	"github.com/dd0wney/regnet-monotone/pkg/engine"
	"github.com/dd0wney/regnet-monotone/pkg/metrics"
	"github.com/dd0wney/regnet-monotone/pkg/present"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

type failingSink struct{}

func (failingSink) Name() string { return "broken" }
func (failingSink) Put(context.Context, string, []byte) error {
	return errors.New("no space left")
}

func canonicalTable(t *testing.T) (*engine.Result, *present.Table, []byte) {
	t.Helper()
	res, err := engine.New(config.Default()).Run(context.Background())
	require.NoError(t, err)
	tbl := present.NewTable(res)
	var buf bytes.Buffer
	require.NoError(t, present.WriteCSV(&buf, tbl))
	return res, tbl, buf.Bytes()
}

func TestFileSink_PutAndVerify(t *testing.T) {
	_, tbl, data := canonicalTable(t)

	sink, err := NewFileSink(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	require.NoError(t, sink.Put(context.Background(), "monotonic_functions.csv", data))

	path := sink.Path("monotonic_functions.csv")
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	columns, rows, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns, columns)
	assert.Len(t, rows, 18)
	assert.NoError(t, Verify(path, tbl))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileSink_Cancelled(t *testing.T) {
	sink, err := NewFileSink(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sink.Put(ctx, "x.csv", []byte("x")), context.Canceled)
}

func TestSnappySink_RoundTrip(t *testing.T) {
	_, tbl, data := canonicalTable(t)

	fs, err := NewFileSink(t.TempDir())
	require.NoError(t, err)
	sink := NewSnappySink(fs)
	assert.Equal(t, "file+snappy", sink.Name())
	require.NoError(t, sink.Put(context.Background(), "monotonic_functions.csv", data))

	path := fs.Path("monotonic_functions.csv" + SnappySuffix)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	plain, err := io.ReadAll(snappy.NewReader(bytes.NewReader(raw)))
	require.NoError(t, err)
	assert.Equal(t, data, plain)

	assert.NoError(t, Verify(path, tbl))
}

func TestVerify_Mismatch(t *testing.T) {
	_, tbl, data := canonicalTable(t)
	fs, err := NewFileSink(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, fs.Put(context.Background(), "a.csv", data))

	changed := *tbl
	changed.Rows = tbl.Rows[:17]
	assert.ErrorIs(t, Verify(fs.Path("a.csv"), &changed), ErrMismatch)

	changed = *tbl
	changed.Columns = append([]string{"x"}, tbl.Columns[1:]...)
	assert.ErrorIs(t, Verify(fs.Path("a.csv"), &changed), ErrMismatch)

	flipped := make([][]int, len(tbl.Rows))
	for i, r := range tbl.Rows {
		flipped[i] = append([]int(nil), r...)
	}
	flipped[3][0] ^= 1
	changed = *tbl
	changed.Rows = flipped
	assert.ErrorIs(t, Verify(fs.Path("a.csv"), &changed), ErrMismatch)
}

func TestReadCSV_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := ReadCSV(filepath.Join(dir, "absent.csv"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte(",a\n1,2\n"), 0o644))
	_, _, err = ReadCSV(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, _, err = ReadCSV(empty)
	assert.Error(t, err)
}

func TestS3Sink(t *testing.T) {
	client := &fakeS3{}
	sink := NewS3SinkWithClient(client, "results", "runs/abc")

	require.NoError(t, sink.Put(context.Background(), "plot.png", []byte{1, 2, 3}))
	require.Len(t, client.inputs, 1)
	in := client.inputs[0]
	assert.Equal(t, "results", *in.Bucket)
	assert.Equal(t, "runs/abc/plot.png", *in.Key)
	assert.Equal(t, "image/png", *in.ContentType)
	assert.Equal(t, int64(3), *in.ContentLength)
	assert.Equal(t, []byte{1, 2, 3}, client.bodies[0])

	assert.Equal(t, "x.csv", NewS3SinkWithClient(client, "b", "").Key("x.csv"))

	client.err = errors.New("access denied")
	err := sink.Put(context.Background(), "a.csv", nil)
	assert.ErrorContains(t, err, "s3://results/runs/abc/a.csv")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv", contentType("a.csv"))
	assert.Equal(t, "application/yaml", contentType("manifest.yaml"))
	assert.Equal(t, "application/octet-stream", contentType("a.csv.sz"))
}

func TestExporter_Manifest(t *testing.T) {
	res, _, data := canonicalTable(t)
	reg := metrics.NewRegistry()
	fs, err := NewFileSink(t.TempDir())
	require.NoError(t, err)
	client := &fakeS3{}

	exp := NewExporter(Manifest{
		RunID:      res.RunID,
		SpaceSize:  res.Space.Len(),
		Candidates: res.Candidates,
		Retained:   res.Set.Len(),
		Files:      []FileDigest{{Name: "stale"}},
	}, []Sink{fs, NewS3SinkWithClient(client, "b", "p")}, WithMetrics(reg))

	require.NoError(t, exp.Put(context.Background(), "monotonic_functions.csv", data))
	m, err := exp.Finish(context.Background(), "manifest.yaml")
	require.NoError(t, err)

	require.Len(t, m.Files, 1)
	assert.Equal(t, Digest(data), m.Files[0].Blake2b)
	assert.Len(t, m.Files[0].Blake2b, 64)
	assert.Equal(t, len(data), m.Files[0].Bytes)
	assert.Len(t, client.inputs, 2)

	raw, err := os.ReadFile(fs.Path("manifest.yaml"))
	require.NoError(t, err)
	var back Manifest
	require.NoError(t, yaml.Unmarshal(raw, &back))
	assert.Equal(t, res.RunID, back.RunID)
	assert.Equal(t, 18, back.Retained)
	assert.Equal(t, uint64(512), back.Candidates)

	c, err := reg.ExportsTotal.GetMetricWithLabelValues("s3", metrics.StatusSuccess)
	require.NoError(t, err)
	var metric dto.Metric
	require.NoError(t, c.Write(&metric))
	assert.Equal(t, float64(2), metric.GetCounter().GetValue())
}

func TestExporter_FailingSinkDoesNotStopOthers(t *testing.T) {
	fs, err := NewFileSink(t.TempDir())
	require.NoError(t, err)

	exp := NewExporter(Manifest{RunID: "r"}, []Sink{failingSink{}, fs})
	err = exp.Put(context.Background(), "a.csv", []byte("x"))
	assert.ErrorContains(t, err, "no space left")

	_, statErr := os.Stat(fs.Path("a.csv"))
	assert.NoError(t, statErr)
	assert.Len(t, exp.Manifest().Files, 1)
}

func TestDigest_Stable(t *testing.T) {
	_, _, first := canonicalTable(t)
	_, _, second := canonicalTable(t)
	assert.Equal(t, Digest(first), Digest(second))
	assert.NotEqual(t, Digest(first), Digest(append(first, '\n')))
}

func TestNewS3Sink_StaticEndpoint(t *testing.T) {
	sink, err := NewS3Sink(context.Background(), S3Options{
		Bucket:          "results",
		Prefix:          "runs",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
	})
	require.NoError(t, err)
	assert.Equal(t, "runs/plot.png", sink.Key("plot.png"))

	client, ok := sink.client.(*s3.Client)
	require.True(t, ok)
	opts := client.Options()
	assert.Equal(t, "http://localhost:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)

	creds, err := opts.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "minio", creds.AccessKeyID)
}
