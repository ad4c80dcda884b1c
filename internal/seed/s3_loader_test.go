package seed

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"bought-tab/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves objects from memory.
type fakeS3 struct {
	objects map[string][]byte
	lastKey string
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.lastKey = aws.ToString(params.Key)
	data, ok := f.objects[f.lastKey]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, path string) (*Batch, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) (*Batch, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, path)
	}
	return nil, errors.New("not implemented")
}

func batchOf(productIDs ...string) *Batch {
	b := &Batch{}
	for _, id := range productIDs {
		b.Records = append(b.Records, model.TabContentRecord{ProductID: id, Content: "content " + id})
	}
	return b
}

func TestS3Loader_Load(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{
		"seeds/tabs.gz": gzipLines(t, `{"product_id":"42","content":"from s3"}`),
	}}
	loader := NewS3LoaderWithClient(client, "bucket", zerolog.Nop())

	batch, err := loader.Load(context.Background(), "seeds/tabs.gz")
	require.NoError(t, err)
	assert.Equal(t, "seeds/tabs.gz", client.lastKey)
	require.Len(t, batch.Records, 1)
	assert.Equal(t, "from s3", batch.Records[0].Content)
}

func TestS3Loader_MissingObject(t *testing.T) {
	loader := NewS3LoaderWithClient(&fakeS3{objects: map[string][]byte{}}, "bucket", zerolog.Nop())

	_, err := loader.Load(context.Background(), "seeds/missing.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket=bucket")
}

func TestFallbackLoader(t *testing.T) {
	tests := []struct {
		name          string
		s3Enabled     bool
		s3Loader      Loader
		fileErr       error
		expectedFirst string
		expectError   bool
	}{
		{
			name:      "S3 success",
			s3Enabled: true,
			s3Loader: &mockLoader{loadFunc: func(_ context.Context, path string) (*Batch, error) {
				assert.Equal(t, "seeds/tabs.gz", path, "S3 key should have prefix")
				return batchOf("s3"), nil
			}},
			expectedFirst: "s3",
		},
		{
			name:      "S3 fails falls back to local",
			s3Enabled: true,
			s3Loader: &mockLoader{loadFunc: func(context.Context, string) (*Batch, error) {
				return nil, errors.New("S3 connection failed")
			}},
			expectedFirst: "local",
		},
		{
			name:      "S3 disabled",
			s3Enabled: false,
			s3Loader: &mockLoader{loadFunc: func(context.Context, string) (*Batch, error) {
				t.Error("S3 loader should not be called when S3 is disabled")
				return nil, errors.New("should not be called")
			}},
			expectedFirst: "local",
		},
		{
			name:          "S3 loader nil",
			s3Enabled:     true,
			s3Loader:      nil,
			expectedFirst: "local",
		},
		{
			name:      "Both fail",
			s3Enabled: true,
			s3Loader: &mockLoader{loadFunc: func(context.Context, string) (*Batch, error) {
				return nil, errors.New("S3 error")
			}},
			fileErr:     errors.New("file not found"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileLoader := &mockLoader{loadFunc: func(_ context.Context, path string) (*Batch, error) {
				assert.Equal(t, "tabs.gz", path, "local file path should not have prefix")
				if tt.fileErr != nil {
					return nil, tt.fileErr
				}
				return batchOf("local"), nil
			}}

			fallback := NewFallbackLoader(tt.s3Loader, fileLoader, "seeds/", tt.s3Enabled, zerolog.Nop())
			batch, err := fallback.Load(context.Background(), "tabs.gz")

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "file not found")
				assert.Nil(t, batch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedFirst, batch.Records[0].ProductID)
		})
	}
}
