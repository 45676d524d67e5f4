// Package web serves the HTTP interface of the assistant with gin.
//
// Routes:
//
//	GET    /         chat page
//	GET    /health   liveness probe
//	POST   /upload   multipart PDF upload (field "file")
//	POST   /chat     {"message": "..."} question
//	GET    /history  conversation log of the session
//	DELETE /session  forget the session
//
// Clients are told apart by the pda_session cookie, issued with the chat
// page, or the X-Session-ID header. Callers sending neither share one
// default session. Error responses never carry internal details; those are logged.
package web
