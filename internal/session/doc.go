// Package session tracks which conversation thread the client is showing.
//
// # Active thread
//
// State holds the single process-wide piece of mutable client state: the id of
// the active thread. It is persisted in the local store under chat_thread_id
// so the same conversation comes back after a restart. Callers read it through
// Active() at the moment they need it rather than capturing it when a command
// is built, so a reply that lands after the user switched threads can be
// recognised as stale.
//
// # Thread ids
//
// Thread ids are minted client side as thread_<unix-ms>_<7 base-36 chars>.
// The chat service creates the conversation on the first message submitted
// with a new id, and may echo back a different id which then becomes active.
//
// # In-flight guard
//
// Guard holds one token per thread id. Submit, rename and delete acquire the
// token before touching the network and release it when they settle, so two
// operations on the same conversation can never interleave.
package session
