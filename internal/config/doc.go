// Package config provides configuration parsing for webkit servers.
//
// The configuration is stored in webkit.json in the working directory and
// can be overridden from the environment. Library packages never read these
// values themselves; the CLI loads them once and passes them on explicitly.
//
// # Configuration File Structure
//
//	{
//	  "debug": false,
//	  "noSession": false,
//	  "addr": ":8080",
//	  "session": {
//	    "idleTimeout": "24m",
//	    "domain": ""
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics"
//	  }
//	}
//
// # Environment
//
//	WEBKIT_DEBUG       "1", "true" or "yes" enables debug mode
//	WEBKIT_NO_SESSION  same values disable sessions
//	WEBKIT_ADDR        listen address
package config
