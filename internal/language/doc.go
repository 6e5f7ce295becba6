// Package language canonicalizes transcription language codes and lists the
// languages the Trint service accepts.
//
// Codes are parsed as BCP 47 tags so casing and separators are normalized
// ("en_gb" and "EN-gb" both become "en-GB"). A well-formed tag outside the
// known list is still accepted; callers decide whether to warn.
package language
