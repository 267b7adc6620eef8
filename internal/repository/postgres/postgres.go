package postgres

// SQLSTATE for unique constraint violations.
const pgerrUniqueViolation = "23505"
