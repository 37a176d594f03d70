package web

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Trigger Zone</title>
    <style>
        body { font-family: sans-serif; max-width: 600px; margin: 50px auto; padding: 20px; }
        h1 { color: #333; }
        .info { background: #f0f0f0; padding: 15px; border-radius: 5px; margin: 20px 0; }
        button { background: #007bff; color: white; border: none; padding: 10px 20px; border-radius: 5px; cursor: pointer; }
        button:hover { background: #0056b3; }
        #log { font-family: monospace; white-space: pre; background: #111; color: #9f9; padding: 10px; min-height: 120px; }
    </style>
</head>
<body>
    <h1>Trigger Zone</h1>
    <div class="info" id="status">Loading...</div>
    <div>
        <button onclick="send({type: 'PlayerEnteredZone'})">Enter zone</button>
        <button onclick="send({type: 'PlayerLeftZone'})">Leave zone</button>
        <button onclick="send({type: 'ButtonPressed'})">Press</button>
        <button onclick="reset()">Reset</button>
    </div>
    <div id="log"></div>
    <script>
        function render(state) {
            document.getElementById('status').innerHTML =
                'In zone: ' + state.inZone + '<br>Score: ' + state.score + '<br>Cooldown: ' + state.cooldownMs + 'ms';
        }

        function append(effects) {
            const log = document.getElementById('log');
            for (const e of effects) {
                log.textContent += (e.type === 'PlaySound' ? '[SOUND] ' + e.name : '[UI] ' + e.text) + '\n';
            }
        }

        async function loadStatus() {
            const res = await fetch('/api/state');
            const data = await res.json();
            render(data.state);
        }

        async function send(event) {
            const res = await fetch('/api/events', {
                method: 'POST',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify(event)
            });
            const data = await res.json();
            render(data.state);
            append(data.effects);
        }

        async function reset() {
            await fetch('/api/reset', {method: 'POST'});
            document.getElementById('log').textContent = '';
            await loadStatus();
        }

        loadStatus();
        setInterval(loadStatus, 250);
    </script>
</body>
</html>`
