package project

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/gofrs/flock"

	"multicam/internal/services"
)

const rootTag = "PremiereData"

// Document is a parsed project file.
type Document struct {
	xml           *etree.Document
	compressed    bool
	trackObjectID string
	objects       map[string]*etree.Element
	maxID         int64
}

// Option adjusts how a document is loaded.
type Option func(*Document)

// WithTrackObjectID pins the multicam track to the VideoClipTrack with the
// given ObjectID instead of detecting it.
func WithTrackObjectID(id string) Option {
	return func(d *Document) {
		d.trackObjectID = strings.TrimSpace(id)
	}
}

// Load reads and parses the project at path.
func Load(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrInvalidInput, "project", "load",
				fmt.Sprintf("%s does not exist", path), err)
		}
		return nil, services.Wrap(services.ErrInvalidInput, "project", "load",
			fmt.Sprintf("read %s", path), err)
	}
	doc, err := parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return doc, nil
}

// Parse reads a project from r, decompressing it when it starts with a gzip header.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidInput, "project", "parse", "read input", err)
	}
	return parse(data, opts...)
}

func parse(data []byte, opts ...Option) (*Document, error) {
	doc := &Document{}
	for _, opt := range opts {
		opt(doc)
	}

	if isGzip(data) {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, services.Wrap(services.ErrMalformedProject, "project", "decompress", "corrupt gzip header", err)
		}
		inflated, err := io.ReadAll(zr)
		if err != nil {
			return nil, services.Wrap(services.ErrMalformedProject, "project", "decompress", "corrupt gzip stream", err)
		}
		data = inflated
		doc.compressed = true
	}

	doc.xml = etree.NewDocument()
	if err := doc.xml.ReadFromBytes(data); err != nil {
		return nil, services.Wrap(services.ErrMalformedProject, "project", "parse", "invalid XML", err)
	}
	root := doc.xml.Root()
	if root == nil {
		return nil, services.Wrap(services.ErrMalformedProject, "project", "parse", "document has no root element", nil)
	}
	if root.Tag != rootTag {
		return nil, services.Wrap(services.ErrMalformedProject, "project", "parse",
			fmt.Sprintf("root element is <%s>, expected <%s>", root.Tag, rootTag), nil)
	}
	doc.indexObjects()
	return doc, nil
}

func isGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

// Compressed reports whether the source was gzip-compressed.
func (d *Document) Compressed() bool {
	return d.compressed
}

// SetCompressed controls whether Encode gzips the output.
func (d *Document) SetCompressed(compressed bool) {
	d.compressed = compressed
}

// Encode serializes the document to w.
func (d *Document) Encode(w io.Writer) error {
	if !d.compressed {
		if _, err := d.xml.WriteTo(w); err != nil {
			return services.Wrap(services.ErrIO, "project", "encode", "write XML", err)
		}
		return nil
	}
	zw := gzip.NewWriter(w)
	if _, err := d.xml.WriteTo(zw); err != nil {
		_ = zw.Close()
		return services.Wrap(services.ErrIO, "project", "encode", "write XML", err)
	}
	if err := zw.Close(); err != nil {
		return services.Wrap(services.ErrIO, "project", "encode", "flush gzip stream", err)
	}
	return nil
}

// Save writes doc to path through a temp file and rename. A sibling lock file
// keeps two runs from writing the same output at once.
func Save(path string, doc *Document) error {
	if doc == nil || doc.xml == nil {
		return services.Wrap(services.ErrInvalidInput, "project", "save", "no document", nil)
	}
	lockPath := path + ".lock"
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrIO, "project", "save", "acquire lock", err)
	}
	if !ok {
		return services.Wrap(services.ErrIO, "project", "save",
			fmt.Sprintf("%s is being written by another process", path), nil)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}()

	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		return err
	}
	if err := writeFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return services.Wrap(services.ErrIO, "project", "save", path, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".prproj-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (d *Document) indexObjects() {
	d.objects = make(map[string]*etree.Element)
	d.maxID = 0
	for _, el := range d.xml.FindElements("//*[@ObjectID]") {
		id := el.SelectAttrValue("ObjectID", "")
		d.objects[id] = el
		if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > d.maxID {
			d.maxID = n
		}
	}
}

func (d *Document) object(id string) *etree.Element {
	return d.objects[strings.TrimSpace(id)]
}

// forget drops el and every descendant carrying an ObjectID from the index.
func (d *Document) forget(el *etree.Element) {
	for _, obj := range append([]*etree.Element{el}, el.FindElements(".//*[@ObjectID]")...) {
		id := obj.SelectAttrValue("ObjectID", "")
		if d.objects[id] == obj {
			delete(d.objects, id)
		}
	}
}

func (d *Document) nextObjectID() string {
	d.maxID++
	return strconv.FormatInt(d.maxID, 10)
}

// referenceCount counts ObjectRef attributes pointing at id.
func (d *Document) referenceCount(id string) int {
	return len(d.xml.FindElements(fmt.Sprintf("//*[@ObjectRef='%s']", id)))
}
