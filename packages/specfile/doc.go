// Package specfile loads YAML suite files into a harness. A suite file
// declares nested groups, lifecycle hooks, and tests whose bodies are
// shell commands; a command's non-zero exit fails the test and its
// combined output becomes the error.
//
//	name: api smoke
//	envFile: .env
//	env:
//	  base: http://localhost:8080
//	beforeAll:
//	  - ./scripts/start-server.sh
//	tests:
//	  - name: ping
//	    run: curl -fsS {{base}}/ping
//	    timeoutMillis: 500
//	groups:
//	  - name: users
//	    tests:
//	      - name: create
//	        run: ./scripts/create-user.sh
//
// Files are checked against a JSON schema before registration so typos
// surface as validation errors rather than silently empty suites.
package specfile
