// Package navigation is the wallet's screen state machine and the gate in
// front of every protected view.
//
// A Navigator owns the current Screen. Each Event is handled under a mutex
// and starts by re-reading the session, so a logout from anywhere takes
// effect on the very next event. Without a session only the auth events
// (GoToLogin, GoToRegister, SubmitLogin, SubmitRegister) are honoured;
// anything else is rejected without a screen change. Should the session
// vanish while a protected screen is showing, the next event first moves
// the navigator back to Login.
//
// After an accepted transition the Navigator materializes the data the
// target screen needs into a ViewModel and pushes it to the Renderer.
// Duplicate emails, bad credentials and invalid forms become Notices;
// store failures are returned to the caller.
package navigation
