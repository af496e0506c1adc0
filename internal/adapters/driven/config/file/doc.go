// Package file stores settings in a TOML file, by default
// ~/.donate/config.toml. Set DONATE_HOME to move the whole donate
// directory, including the donation database.
package file
