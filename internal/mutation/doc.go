// Package mutation implements the create/delete form shared by the
// category and recipe screens. A Form validates input, produces one
// Submission per accepted submit, and arms a single redirect on success.
package mutation
