package session

// ExampleRequirement is the canned requirement text loaded by
// Session.LoadExample. It describes a small but complete project so a
// first-time user sees a realistic submission.
const ExampleRequirement = `Build a REST API for a personal reading list.

Books have a title, author, status (want-to-read, reading, finished) and
an optional 1-5 rating. Provide endpoints to add, update, delete and list
books, with filtering by status and sorting by rating. Store the data in
SQLite. Include a Dockerfile and a README with setup instructions.`
