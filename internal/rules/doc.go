// Package rules is the bilingual (English/Vietnamese) rule engine that labels
// an email thread along six dimensions: scheduling, request type,
// attachments, urgency, tone and thread state.
//
// Each dimension is an ordered table of outcomes. An outcome owns one rank
// and the English and Vietnamese patterns that emit it, so either language
// can trigger the same result. Tables are compiled once by NewEngine and the
// resulting Engine is immutable and safe for concurrent use.
//
// Matching is case-insensitive and accent-insensitive: message text and
// patterns are both passed through Fold before comparison.
package rules
