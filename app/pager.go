package main

import (
	"bytes"
	"container/list"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	magicPrefix = "SQLite format "
	headerSize  = 100
	formatDigit = '3'
)

// Header is the fixed 100-byte database header.
type Header struct {
	PageSize     int
	ReservedTail uint8
}

func parseHeader(buf []byte) (Header, error) {
	if len(buf) < headerSize {
		return Header{}, newError("parse_header", ErrTruncated, nil)
	}
	if !bytes.HasPrefix(buf, []byte(magicPrefix)) || buf[len(magicPrefix)] != formatDigit {
		return Header{}, newError("parse_header", ErrBadSignature, nil)
	}

	pageSize := int(buf[16])<<8 | int(buf[17])
	if pageSize == 1 {
		pageSize = 65536
	}

	return Header{PageSize: pageSize, ReservedTail: buf[20]}, nil
}

// ValidationLevel controls how strictly Pager.PageAt checks cell
// pointer bounds after decoding a page.
type ValidationLevel int

const (
	ValidationBasic  ValidationLevel = iota // header-end <= pointer <= page size
	ValidationStrict                        // also deducts the reserved tail
)

// Config holds the functional options accepted by Open.
type Config struct {
	Validation    ValidationLevel
	PageCacheSize int // 0 disables the cache
}

// Option configures a Pager at Open time.
type Option func(*Config)

// WithValidation sets how strictly page decoding checks cell-pointer
// bounds against the page's reserved tail.
func WithValidation(level ValidationLevel) Option {
	return func(c *Config) { c.Validation = level }
}

// WithPageCache enables a bounded LRU cache of up to n decoded pages,
// evicting the least recently used page once full. Reads go straight
// through the OS file buffer by default; this exists for callers that
// re-read the same pages repeatedly (e.g. walking the schema once per
// query).
func WithPageCache(n int) Option {
	return func(c *Config) { c.PageCacheSize = n }
}

func defaultConfig() *Config {
	return &Config{Validation: ValidationBasic, PageCacheSize: 0}
}

// Pager owns the single open file handle and reads pages from it by
// 1-based page number. It is not safe for concurrent use; callers must
// serialize access to a single handle.
type Pager struct {
	file   *os.File
	Header Header
	config *Config
	cache  *pageCache
}

// pageCache is a bounded least-recently-used cache of decoded pages,
// keyed by 1-based page number. Get moves a hit to the front; Put
// evicts the back entry once the cache is over capacity.
type pageCache struct {
	maxSize int
	entries map[int]*list.Element
	order   *list.List
}

type pageCacheEntry struct {
	pageNum int
	page    *Page
}

func newPageCache(maxSize int) *pageCache {
	return &pageCache{
		maxSize: maxSize,
		entries: make(map[int]*list.Element, maxSize),
		order:   list.New(),
	}
}

func (c *pageCache) Get(pageNum int) (*Page, bool) {
	el, ok := c.entries[pageNum]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*pageCacheEntry).page, true
}

func (c *pageCache) Put(pageNum int, page *Page) {
	if el, ok := c.entries[pageNum]; ok {
		el.Value.(*pageCacheEntry).page = page
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&pageCacheEntry{pageNum: pageNum, page: page})
	c.entries[pageNum] = el

	if c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*pageCacheEntry).pageNum)
	}
}

// Open validates the file signature, reads the header, and returns a
// Pager ready to serve PageAt calls.
func Open(path string, opts ...Option) (*Pager, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database file: %w", err)
	}

	buf := make([]byte, headerSize)
	if _, err := f.ReadAt(buf, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("read database header: %w", err)
	}

	header, err := parseHeader(buf)
	if err != nil {
		f.Close()
		return nil, err
	}

	p := &Pager{file: f, Header: header, config: cfg}
	if cfg.PageCacheSize > 0 {
		p.cache = newPageCache(cfg.PageCacheSize)
	}
	return p, nil
}

func (p *Pager) Close() error {
	return p.file.Close()
}

// PageAt reads and decodes the page at 1-based index i.
func (p *Pager) PageAt(i int) (*Page, error) {
	if p.cache != nil {
		if page, ok := p.cache.Get(i); ok {
			return page, nil
		}
	}

	pageSize := p.Header.PageSize
	offset := int64(i-1) * int64(pageSize)

	buf := make([]byte, pageSize)
	n, err := p.file.ReadAt(buf, offset)
	if err != nil && n != pageSize {
		if errors.Is(err, io.EOF) {
			return nil, newError("page_at", ErrTruncated, map[string]any{"page": i, "have": n})
		}
		return nil, fmt.Errorf("read page %d: %w", i, err)
	}

	prefix := 0
	if i == 1 {
		prefix = headerSize
	}

	page, err := decodePage(buf, prefix)
	if err != nil {
		return nil, err
	}

	if err := p.validatePointers(page); err != nil {
		return nil, err
	}

	if p.cache != nil {
		p.cache.Put(i, page)
	}
	return page, nil
}

// validatePointers checks that every cell pointer lies between the end
// of the page header and the usable tail of the page. ValidationStrict
// additionally deducts the header's reserved-tail byte count, matching
// what real SQLite reserves for per-page extensions.
func (p *Pager) validatePointers(page *Page) error {
	headerEnd := page.prefix + page.Head.headerSize()
	limit := len(page.bytes)
	if p.config.Validation == ValidationStrict {
		limit -= int(p.Header.ReservedTail)
	}

	for _, ptr := range page.cellPointers {
		if int(ptr) < headerEnd || int(ptr) > limit {
			return newError("validate_pointers", ErrMalformed, map[string]any{
				"pointer": ptr, "header_end": headerEnd, "limit": limit,
			})
		}
	}
	return nil
}
