package vfs

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"sort"
	"strings"

	minio "github.com/minio/minio-go/v7"

	"github.com/yeisme/photovault/pkg/internal/storage/s3"
)

// S3FileSystem 对象存储后端. 对象键为去掉前导斜杠的 VFS 路径，
// 目录用带尾斜杠的零字节标记对象表示.
type S3FileSystem struct {
	cli    *s3.Client
	bucket string
}

// NewS3FileSystem 创建 S3 后端的文件系统.
func NewS3FileSystem(ctx context.Context) (*S3FileSystem, error) {
	cli, err := s3.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init s3 backend: %w", err)
	}
	return &S3FileSystem{cli: cli, bucket: cli.GetConfig().BucketName}, nil
}

// objectKey 将 VFS 路径转为对象键.
func objectKey(path string) string {
	return strings.TrimPrefix(Normalize(path), "/")
}

func (f *S3FileSystem) dirMarker(path string) string {
	return objectKey(path) + "/"
}

func (f *S3FileSystem) Stat(ctx context.Context, path string) (Info, error) {
	path = Normalize(path)
	if path == "" {
		return Info{Exists: true, IsDirectory: true}, nil
	}

	key := objectKey(path)
	if st, err := f.cli.StatObject(ctx, f.bucket, key, minio.StatObjectOptions{}); err == nil {
		return Info{
			Exists:           true,
			Size:             st.Size,
			ModificationTime: st.LastModified,
		}, nil
	}
	if st, err := f.cli.StatObject(ctx, f.bucket, key+"/", minio.StatObjectOptions{}); err == nil {
		return Info{
			Exists:           true,
			IsDirectory:      true,
			ModificationTime: st.LastModified,
		}, nil
	}
	// 无显式标记时，任何以该前缀开头的对象都使它成为隐式目录
	for obj := range f.cli.ListObjects(ctx, f.bucket, minio.ListObjectsOptions{Prefix: key + "/", MaxKeys: 1}) {
		if obj.Err != nil {
			return Info{}, obj.Err
		}
		return Info{Exists: true, IsDirectory: true}, nil
	}
	return Info{}, nil
}

func (f *S3FileSystem) Mkdir(ctx context.Context, path string, intermediates bool) error {
	path = Normalize(path)
	if path == "" {
		return nil
	}

	if !intermediates {
		parent := Parent(path)
		if parent != "" {
			info, err := f.Stat(ctx, parent)
			if err != nil {
				return err
			}
			if !info.Exists {
				return NotFoundError(parent)
			}
			if !info.IsDirectory {
				return fmt.Errorf("%w: %s", ErrNotDirectory, parent)
			}
		}
		return f.putMarker(ctx, path)
	}

	for p := path; p != ""; p = Parent(p) {
		if err := f.putMarker(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (f *S3FileSystem) putMarker(ctx context.Context, path string) error {
	_, err := f.cli.PutObject(ctx, f.bucket, f.dirMarker(path),
		bytes.NewReader(nil), 0, minio.PutObjectOptions{ContentType: "application/x-directory"})
	return err
}

func (f *S3FileSystem) List(ctx context.Context, path string) ([]string, error) {
	path = Normalize(path)
	prefix := ""
	if path != "" {
		info, err := f.Stat(ctx, path)
		if err != nil {
			return nil, err
		}
		if !info.Exists {
			return nil, NotFoundError(path)
		}
		if !info.IsDirectory {
			return nil, fmt.Errorf("%w: %s", ErrNotDirectory, path)
		}
		prefix = objectKey(path) + "/"
	}

	seen := make(map[string]struct{})
	for obj := range f.cli.ListObjects(ctx, f.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		rest := strings.TrimPrefix(obj.Key, prefix)
		if rest == "" {
			continue
		}
		if idx := strings.Index(rest, "/"); idx >= 0 {
			rest = rest[:idx]
		}
		seen[rest] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (f *S3FileSystem) WriteString(ctx context.Context, path, content string, enc Encoding) error {
	data := []byte(content)
	if enc == EncodingBase64 {
		var err error
		data, err = base64.StdEncoding.DecodeString(content)
		if err != nil {
			return fmt.Errorf("decode base64 content: %w", err)
		}
	}
	_, err := f.cli.PutObject(ctx, f.bucket, objectKey(path),
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	return err
}

func (f *S3FileSystem) ReadString(ctx context.Context, path string, enc Encoding) (string, error) {
	obj, err := f.cli.GetObject(ctx, f.bucket, objectKey(path), minio.GetObjectOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return "", NotFoundError(path)
		}
		return "", err
	}
	if enc == EncodingBase64 {
		return base64.StdEncoding.EncodeToString(data), nil
	}
	return string(data), nil
}

func (f *S3FileSystem) Copy(ctx context.Context, from, to string) error {
	_, err := f.cli.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: f.bucket, Object: objectKey(to)},
		minio.CopySrcOptions{Bucket: f.bucket, Object: objectKey(from)})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return NotFoundError(from)
		}
		return err
	}
	return nil
}

func (f *S3FileSystem) Move(ctx context.Context, from, to string) error {
	info, err := f.Stat(ctx, from)
	if err != nil {
		return err
	}
	if !info.Exists {
		return NotFoundError(from)
	}

	if !info.IsDirectory {
		if err := f.Copy(ctx, from, to); err != nil {
			return err
		}
		return f.cli.RemoveObject(ctx, f.bucket, objectKey(from), minio.RemoveObjectOptions{})
	}

	prefix := objectKey(from) + "/"
	toPrefix := objectKey(to) + "/"
	for obj := range f.cli.ListObjects(ctx, f.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return obj.Err
		}
		dst := toPrefix + strings.TrimPrefix(obj.Key, prefix)
		if _, err := f.cli.CopyObject(ctx,
			minio.CopyDestOptions{Bucket: f.bucket, Object: dst},
			minio.CopySrcOptions{Bucket: f.bucket, Object: obj.Key}); err != nil {
			return err
		}
		if err := f.cli.RemoveObject(ctx, f.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return err
		}
	}
	_ = f.cli.RemoveObject(ctx, f.bucket, prefix, minio.RemoveObjectOptions{})
	return f.putMarker(ctx, to)
}

func (f *S3FileSystem) Delete(ctx context.Context, path string, idempotent bool) error {
	info, err := f.Stat(ctx, path)
	if err != nil {
		return err
	}
	if !info.Exists {
		if idempotent {
			return nil
		}
		return NotFoundError(path)
	}

	if !info.IsDirectory {
		return f.cli.RemoveObject(ctx, f.bucket, objectKey(path), minio.RemoveObjectOptions{})
	}

	prefix := objectKey(path) + "/"
	for obj := range f.cli.ListObjects(ctx, f.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return obj.Err
		}
		if err := f.cli.RemoveObject(ctx, f.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return err
		}
	}
	return f.cli.RemoveObject(ctx, f.bucket, prefix, minio.RemoveObjectOptions{})
}

func (f *S3FileSystem) Close() error {
	return f.cli.Close()
}
