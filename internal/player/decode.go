package player

import (
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
)

const (
	formatMP3  = "mp3"
	formatFLAC = "flac"
)

// detectFormat picks a decoder from the response content type, then the
// locator extension, then the leading bytes of the stream.
func detectFormat(header []byte, contentType, name string) (string, error) {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mt {
		case "audio/mpeg", "audio/mp3":
			return formatMP3, nil
		case "audio/flac", "audio/x-flac":
			return formatFLAC, nil
		}
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".mp3":
		return formatMP3, nil
	case ".flac":
		return formatFLAC, nil
	}

	switch {
	case len(header) >= 4 && string(header[:4]) == "fLaC":
		return formatFLAC, nil
	case len(header) >= 3 && string(header[:3]) == "ID3":
		return formatMP3, nil
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		return formatMP3, nil
	}
	return "", fmt.Errorf("unsupported audio format (content type %q)", contentType)
}

// decodeStream decodes a buffered audio source. rc is owned by the returned
// streamer on success.
func decodeStream(rc io.ReadSeekCloser, contentType, name string) (beep.StreamSeekCloser, beep.Format, error) {
	header := make([]byte, 4)
	n, err := io.ReadFull(rc, header)
	if err != nil && n == 0 {
		return nil, beep.Format{}, fmt.Errorf("read audio header: %w", err)
	}
	if _, err := rc.Seek(0, io.SeekStart); err != nil {
		return nil, beep.Format{}, err
	}

	format, err := detectFormat(header[:n], contentType, name)
	if err != nil {
		return nil, beep.Format{}, err
	}

	switch format {
	case formatFLAC:
		// Some taggers prepend ID3v2 to FLAC, which the decoder doesn't handle.
		if err := skipID3v2(rc); err != nil {
			return nil, beep.Format{}, err
		}
		return flac.Decode(rc)
	default:
		return decodeMP3(rc)
	}
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the stream.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && n == 0 {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// ID3v2 size is a syncsafe integer: 7 bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
