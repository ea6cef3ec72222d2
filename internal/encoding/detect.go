package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const peekSize = 4096

// FallbackCharset is assumed when neither a BOM, valid UTF-8 nor the
// detector settle the question. Most spreadsheet exports we receive from
// older office software use it.
const FallbackCharset = "windows-1252"

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// legacy maps detector charset names onto decoders. Anything else the
// detector reports on short samples is too unreliable to trust.
var legacy = map[string]xenc.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
	"ISO-8859-15":  charmap.ISO8859_15,
}

// Reader yields UTF-8 and remembers which charset the source was in.
type Reader struct {
	io.Reader
	Charset string
}

// NewUTF8Reader detects the encoding of the input and returns a reader
// that decodes the content to UTF-8.
//
// Detection order:
//  1. BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. valid UTF-8 is returned as-is
//  3. chardet heuristics over the first 4 KiB
//  4. FallbackCharset
func NewUTF8Reader(r io.Reader) (*Reader, error) {
	br := bufio.NewReaderSize(r, peekSize)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return &Reader{Reader: br, Charset: "UTF-8"}, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), "UTF-16LE"), nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM), "UTF-16BE"), nil
	}

	if validUTF8Prefix(buf) {
		return &Reader{Reader: br, Charset: "UTF-8"}, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(buf); err == nil {
		if result.Charset == "UTF-8" {
			return &Reader{Reader: br, Charset: "UTF-8"}, nil
		}

		if e, ok := legacy[result.Charset]; ok {
			return decode(br, e, result.Charset), nil
		}
	}

	return decode(br, charmap.Windows1252, FallbackCharset), nil
}

func decode(r io.Reader, e xenc.Encoding, charset string) *Reader {
	return &Reader{Reader: transform.NewReader(r, e.NewDecoder()), Charset: charset}
}

// validUTF8Prefix is utf8.Valid that tolerates a rune cut off by the peek window.
func validUTF8Prefix(buf []byte) bool {
	if utf8.Valid(buf) {
		return true
	}

	for cut := 1; cut < utf8.UTFMax && cut < len(buf); cut++ {
		head := buf[:len(buf)-cut]
		if utf8.Valid(head) && !utf8.FullRune(buf[len(buf)-cut:]) {
			return true
		}
	}

	return false
}
