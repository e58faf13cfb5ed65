// Copyright ©2024 The biogo.htsio Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package auto chooses one of the five format decoders from a path's
// extension and opens it, returning a tagged variant over the per-format
// Readers rather than a dynamically dispatched interface: the set of
// formats is closed, so a switch over an explicit Kind keeps every record
// type concrete at the call site.
package auto

import (
	"path/filepath"
	"strings"

	"github.com/biogo/htsio"
	"github.com/biogo/htsio/bam"
	"github.com/biogo/htsio/bcf"
	"github.com/biogo/htsio/breader"
	"github.com/biogo/htsio/fasta"
	"github.com/biogo/htsio/fastq"
	"github.com/biogo/htsio/vcf"
)

// Format is one of the five record formats this module decodes.
type Format int

const (
	FASTA Format = iota
	FASTQ
	VCF
	BAM
	BCF
)

func (f Format) String() string {
	switch f {
	case FASTA:
		return "fasta"
	case FASTQ:
		return "fastq"
	case VCF:
		return "vcf"
	case BAM:
		return "bam"
	case BCF:
		return "bcf"
	default:
		return "unknown"
	}
}

var formatByExt = map[string]Format{
	".fa":    FASTA,
	".fasta": FASTA,
	".fna":   FASTA,
	".fq":    FASTQ,
	".fastq": FASTQ,
	".vcf":   VCF,
	".bam":   BAM,
	".bcf":   BCF,
}

// DetectFormat chooses a Format from path's extension, stripping one
// trailing compression suffix first so "variants.vcf.gz" still resolves to
// VCF. It returns htsio.ErrUnknownExtension if no known format suffix
// matches.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gz" || ext == ".bgzf" {
		rest := strings.TrimSuffix(path, filepath.Ext(path))
		ext = strings.ToLower(filepath.Ext(rest))
	}
	f, ok := formatByExt[ext]
	if !ok {
		return 0, htsio.ErrUnknownExtension
	}
	return f, nil
}

// Reader is a tagged variant over the five format readers: exactly one of
// the typed fields is populated, selected by Kind.
type Reader struct {
	Kind Format

	FASTA *fasta.Reader
	FASTQ *fastq.Reader
	VCF   *vcf.Reader
	BAM   *bam.Reader
	BCF   *bcf.Reader
}

// Open detects cfg.Path's format by extension and opens the matching
// decoder. It returns htsio.ErrUnknownExtension if the extension names no
// known format. Stream-backed Config values carry no path to detect a
// format from; use OpenAs for those.
func Open(cfg breader.Config) (*Reader, error) {
	f, err := DetectFormat(cfg.Path)
	if err != nil {
		return nil, err
	}
	return OpenAs(f, cfg)
}

// OpenAs opens cfg as an explicitly chosen format, bypassing extension
// detection.
func OpenAs(f Format, cfg breader.Config) (*Reader, error) {
	r := &Reader{Kind: f}
	var err error
	switch f {
	case FASTA:
		r.FASTA, err = fasta.OpenConfig(cfg)
	case FASTQ:
		r.FASTQ, err = fastq.OpenConfig(cfg)
	case VCF:
		r.VCF, err = vcf.OpenConfig(cfg)
	case BAM:
		r.BAM, err = bam.OpenConfig(cfg)
	case BCF:
		r.BCF, err = bcf.OpenConfig(cfg)
	default:
		return nil, htsio.ErrUnknownExtension
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Close releases the underlying reader's byte source.
func (r *Reader) Close() error {
	switch r.Kind {
	case FASTA:
		return r.FASTA.Close()
	case FASTQ:
		return r.FASTQ.Close()
	case VCF:
		return r.VCF.Close()
	case BAM:
		return r.BAM.Close()
	case BCF:
		return r.BCF.Close()
	default:
		return nil
	}
}
