// Package email sends the notification mail produced by contact form
// submissions.
//
// Sender is the delivery seam. NewPostmarkClient talks to Postmark's
// transactional API; DevSender writes each message to a directory as an
// .html body plus a .json envelope so local runs need no credentials. New
// picks one based on Config.
//
// Message bodies are templ components rendered with Render.
package email
