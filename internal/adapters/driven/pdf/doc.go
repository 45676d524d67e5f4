// Package pdf reads PDFs for ingestion.
//
// Text extraction and page rasterisation shell out to the poppler
// utilities (pdftotext, pdftoppm) through a CommandRunner so tests can
// substitute canned output. Page counting and structural validation use
// pdfcpu, which needs no external binaries.
package pdf
