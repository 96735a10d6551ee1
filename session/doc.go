// Package session drives the requirement-to-archive flow of a generation
// client.
//
// Core types:
//   - Session: requirement text, submission state and the held artifact
//   - Snapshot: point-in-time view of a session for display
//   - Status: idle or submitting
//
// A session accepts one submission at a time. Submit validates the
// requirement text, releases any previously held artifact, runs the
// generation pipeline and returns to idle whatever the outcome. The most
// recent failure message stays available through LastError until the
// next submission clears it.
//
// Example usage:
//
//	sess, err := session.New(session.Config{Client: gen, Artifacts: store})
//	defer sess.Close()
//
//	art, err := sess.Submit(ctx, "Build a CLI tool for tracking TODOs")
//	if err != nil {
//		log.Fatal(sess.LastError())
//	}
//	fmt.Println(art.Filename)
package session
