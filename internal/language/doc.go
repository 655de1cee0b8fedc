// Package language normalizes the language preferences sent to the geocoder.
//
// Operators may write ISO 639-1 codes, ISO 639-2 codes, or English and native
// language names; the geocoder only understands an accept-language list of
// ISO 639-1 codes.
package language
