// Package journalsdk is a typed HTTP client for the Wayfarer travel
// journal service.
//
// Unauthenticated operations (register, login, health) hang off the
// Client. Logging in, or constructing a session from a stored token,
// yields a Session whose methods carry the bearer token on every
// request.
//
//	client := journalsdk.NewClient("http://localhost:8080")
//	session, err := client.Login(ctx, "ada@example.com", "secret")
//	if err != nil { ... }
//	stories, err := session.ListStories(ctx)
package journalsdk
