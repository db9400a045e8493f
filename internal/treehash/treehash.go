// Package treehash computes deterministic content digests over directory
// subtrees. Two trees with identical relative paths and file contents always
// produce the same digest, regardless of walk timing or platform separators.
package treehash

import (
	"encoding/binary"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/opencontainers/go-digest"

	"github.com/rockplan/rockplan/internal/fsops"
)

// Tree digests every regular file under root. Each file contributes its
// slash-separated relative path and its contents, both length-prefixed with
// 8-byte big-endian counts so that path/content boundaries cannot collide.
// filepath.WalkDir visits entries in lexical order, which fixes the fold order.
func Tree(root string, ops fsops.Ops) (digest.Digest, error) {
	absRoot, err := ops.Path.Abs(root)
	if err != nil {
		return "", fmt.Errorf("treehash: resolve root: %w", err)
	}

	digester := digest.Canonical.Digester()
	h := digester.Hash()
	var lenBuf [8]byte

	writeChunk := func(b []byte) {
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(b)))
		h.Write(lenBuf[:])
		h.Write(b)
	}

	err = ops.Walker.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, relErr := ops.Path.Rel(absRoot, path)
		if relErr != nil {
			return relErr
		}

		data, readErr := ops.OS.ReadFile(path)
		if readErr != nil {
			return readErr
		}

		writeChunk([]byte(ops.Path.ToSlash(rel)))
		writeChunk(data)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("treehash: walk %s: %w", root, err)
	}

	return digester.Digest(), nil
}

// File digests a single file's contents. Handy for spot checks.
func File(path string, ops fsops.Ops) (digest.Digest, error) {
	data, err := ops.OS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("treehash: read %s: %w", filepath.Base(path), err)
	}
	return digest.FromBytes(data), nil
}
